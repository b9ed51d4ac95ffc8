// SPDX-License-Identifier: BSD-3-Clause

//go:build unix

package process

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

const readChunkSize = 32 * 1024

// record is a Manager's bookkeeping for one spawned child.
type record struct {
	cmd  *exec.Cmd
	pgid int

	mu       sync.Mutex
	done     chan struct{}
	exitCode int
}

func (r *record) wait(d time.Duration) (int, bool, error) {
	select {
	case <-r.done:
		r.mu.Lock()
		code := r.exitCode
		r.mu.Unlock()

		return code, true, nil
	case <-time.After(d):
		return 0, false, nil
	}
}

// UnixManager is the POSIX implementation of Manager: it places every child
// in a new process group (via Setsid) and signals the whole group on
// Shutdown/Kill so a child's own forked descendants are never orphaned.
type UnixManager struct {
	mu       sync.Mutex
	nextID   ProcID
	records  map[ProcID]*record
	assigned map[ProcID]bool
}

// NewManager creates an empty UnixManager.
func NewManager() *UnixManager {
	return &UnixManager{
		records:  make(map[ProcID]*record),
		assigned: make(map[ProcID]bool),
	}
}

// Spawn implements Manager.
func (m *UnixManager) Spawn(_ context.Context, spec CommandSpec) (Spawned, error) {
	if len(spec.Cmd) == 0 {
		return Spawned{}, fmt.Errorf("%w: service %q", ErrEmptyCmd, spec.Name)
	}

	cmd := exec.Command(spec.Cmd[0], spec.Cmd[1:]...)
	if spec.Cwd != "" {
		cmd.Dir = spec.Cwd
	}
	if len(spec.Env) > 0 {
		env := os.Environ()
		for k, v := range spec.Env {
			env = append(env, k+"="+v)
		}
		cmd.Env = env
	}
	// Setsid puts the child (and anything it forks) in a new session and
	// process group, so killpg-style signaling below reaches the whole
	// subtree instead of only the immediate child.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return Spawned{}, fmt.Errorf("%w: %s: %w", ErrSpawnFailed, spec.Name, err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return Spawned{}, fmt.Errorf("%w: %s: %w", ErrSpawnFailed, spec.Name, err)
	}

	if err := cmd.Start(); err != nil {
		return Spawned{}, fmt.Errorf("%w: %s: %w", ErrSpawnFailed, spec.Name, err)
	}

	pgid := cmd.Process.Pid

	rec := &record{
		cmd:  cmd,
		pgid: pgid,
		done: make(chan struct{}),
	}

	// cmd.Wait closes both pipes, so the reaper waits until both readers
	// have hit EOF; output still buffered in a pipe is never discarded.
	var readers sync.WaitGroup
	stdoutCh := streamPipe(stdoutPipe, &readers)
	stderrCh := streamPipe(stderrPipe, &readers)

	go func() {
		readers.Wait()
		rec.reap()
	}()

	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.records[id] = rec
	m.assigned[id] = true
	m.mu.Unlock()

	return Spawned{
		ID:     id,
		PID:    cmd.Process.Pid,
		Stdout: stdoutCh,
		Stderr: stderrCh,
	}, nil
}

func (r *record) reap() {
	err := r.cmd.Wait()
	code := 0
	if err != nil {
		var exitErr *exec.ExitError
		if ok := asExitError(err, &exitErr); ok {
			// ExitCode() is -1 when the child was terminated by a
			// signal rather than exiting normally (e.g. our own
			// Shutdown/Kill). Callers treat a missing exit code
			// as 0.
			if c := exitErr.ExitCode(); c >= 0 {
				code = c
			}
		}
	}
	r.mu.Lock()
	r.exitCode = code
	r.mu.Unlock()
	close(r.done)
}

func asExitError(err error, target **exec.ExitError) bool {
	ee, ok := err.(*exec.ExitError)
	if ok {
		*target = ee
	}

	return ok
}

// streamPipe reads raw chunks off r and forwards them on the returned
// channel, which closes when r reaches EOF or errors.
func streamPipe(r interface{ Read([]byte) (int, error) }, wg *sync.WaitGroup) <-chan []byte {
	out := make(chan []byte)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(out)
		buf := make([]byte, readChunkSize)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				out <- chunk
			}
			if err != nil {
				return
			}
		}
	}()

	return out
}

func (m *UnixManager) lookup(id ProcID) (*record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec, ok := m.records[id]; ok {
		return rec, nil
	}
	if m.assigned[id] {
		return nil, fmt.Errorf("%w: %d", ErrAlreadyReaped, id)
	}

	return nil, fmt.Errorf("%w: %d", ErrUnknownProcID, id)
}

func (m *UnixManager) forget(id ProcID) {
	m.mu.Lock()
	delete(m.records, id)
	m.mu.Unlock()
}

// Shutdown implements Manager.
func (m *UnixManager) Shutdown(id ProcID) error {
	rec, err := m.lookup(id)
	if err != nil {
		return err
	}

	if err := unix.Kill(-rec.pgid, syscall.SIGTERM); err != nil {
		return fmt.Errorf("%w: %d: %w", ErrSignalFailed, id, err)
	}

	return nil
}

// Wait implements Manager.
func (m *UnixManager) Wait(id ProcID, d time.Duration) (int, bool, error) {
	rec, err := m.lookup(id)
	if err != nil {
		return 0, false, err
	}

	code, reaped, err := rec.wait(d)
	if err != nil {
		return 0, false, err
	}
	if reaped {
		m.forget(id)
	}

	return code, reaped, nil
}

// Kill implements Manager.
func (m *UnixManager) Kill(id ProcID) error {
	rec, err := m.lookup(id)
	if err != nil {
		return err
	}

	if err := unix.Kill(-rec.pgid, syscall.SIGKILL); err != nil {
		return fmt.Errorf("%w: %d: %w", ErrSignalFailed, id, err)
	}

	// Best-effort sync with the reaper goroutine so the zombie doesn't
	// linger; a process that ignores SIGKILL cannot exist, so this should
	// always complete fast. The handle stays registered: a caller is still
	// entitled to one Wait after Kill to collect the exit code.
	_, _, _ = rec.wait(10 * time.Millisecond)

	return nil
}
