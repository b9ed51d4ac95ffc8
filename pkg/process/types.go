// SPDX-License-Identifier: BSD-3-Clause

package process

import (
	"context"
	"time"
)

// ProcID is a dense, monotonically increasing identifier assigned by a
// Manager at spawn time. It is never reused within the lifetime of a
// Manager.
type ProcID uint64

// CommandSpec describes a child process to spawn.
type CommandSpec struct {
	// Name identifies the service this process implements, for logging
	// only; it plays no role in process-group bookkeeping.
	Name string
	// Cmd is argv. Cmd[0] is the executable.
	Cmd []string
	// Cwd is the working directory, or "" to inherit the Manager's.
	Cwd string
	// Env overrides/extends the inherited environment.
	Env map[string]string
}

// Spawned is returned by a successful Spawn call.
type Spawned struct {
	ID  ProcID
	PID int
	// Stdout and Stderr deliver byte chunks as the underlying pipe
	// produces them; each channel closes when the child closes that
	// pipe. A chunk is not a line: it is whatever a single read
	// returned.
	Stdout <-chan []byte
	Stderr <-chan []byte
}

// Manager spawns, signals, and reaps child processes, each in its own
// process group.
type Manager interface {
	// Spawn starts spec as a child of the calling process, placed in a new
	// process group. It fails if Cmd is empty or the executable cannot be
	// launched.
	Spawn(ctx context.Context, spec CommandSpec) (Spawned, error)
	// Shutdown sends a graceful termination signal (SIGTERM) to id's
	// process group. It does not wait for the process to exit.
	Shutdown(id ProcID) error
	// Wait polls for id's completion up to d, returning the exit code
	// once reaped, or (0, false, nil) on timeout. On success it releases
	// the internal handle: subsequent calls report ErrAlreadyReaped.
	Wait(id ProcID, d time.Duration) (exitCode int, reaped bool, err error)
	// Kill sends an unconditional SIGKILL to id's process group, then
	// waits briefly so the zombie is reaped.
	Kill(id ProcID) error
}
