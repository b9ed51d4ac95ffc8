// SPDX-License-Identifier: BSD-3-Clause

package process

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockManager is an in-memory Manager used by the supervisor's own tests.
// It never actually execs anything: Spawn records the CommandSpec it was
// given and hands back already-closed output channels, simulating a child
// that produces nothing and exits immediately.
type MockManager struct {
	mu      sync.Mutex
	Spawns  []CommandSpec
	nextID  ProcID
	stopped map[ProcID]bool
}

// Compile-time assertion that MockManager implements Manager.
var _ Manager = (*MockManager)(nil)

// NewMockManager creates an empty MockManager.
func NewMockManager() *MockManager {
	return &MockManager{stopped: make(map[ProcID]bool)}
}

// Spawn implements Manager. The returned Stdout/Stderr channels are closed
// immediately, simulating a process that produces no output and exits as
// soon as it is asked to.
func (m *MockManager) Spawn(_ context.Context, spec CommandSpec) (Spawned, error) {
	if len(spec.Cmd) == 0 {
		return Spawned{}, fmt.Errorf("%w: service %q", ErrEmptyCmd, spec.Name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Spawns = append(m.Spawns, spec)
	id := m.nextID
	m.nextID++

	stdout := make(chan []byte)
	stderr := make(chan []byte)
	close(stdout)
	close(stderr)

	return Spawned{ID: id, PID: 0, Stdout: stdout, Stderr: stderr}, nil
}

// Shutdown implements Manager.
func (m *MockManager) Shutdown(id ProcID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id >= m.nextID {
		return fmt.Errorf("%w: %d", ErrUnknownProcID, id)
	}
	m.stopped[id] = true

	return nil
}

// Wait implements Manager. Since MockManager's children are considered
// exited the moment they are spawned, Wait always reports them reaped with
// exit code 0.
func (m *MockManager) Wait(id ProcID, _ time.Duration) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id >= m.nextID {
		return 0, false, fmt.Errorf("%w: %d", ErrUnknownProcID, id)
	}

	return 0, true, nil
}

// Kill implements Manager.
func (m *MockManager) Kill(id ProcID) error {
	return m.Shutdown(id)
}
