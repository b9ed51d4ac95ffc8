// SPDX-License-Identifier: BSD-3-Clause

package process

import "errors"

var (
	// ErrEmptyCmd indicates Spawn was called with an empty argv.
	ErrEmptyCmd = errors.New("cmd must not be empty")
	// ErrSpawnFailed indicates the child executable could not be launched.
	ErrSpawnFailed = errors.New("failed to spawn child process")
	// ErrUnknownProcID indicates an operation referenced a ProcID the
	// Manager never assigned.
	ErrUnknownProcID = errors.New("unknown process id")
	// ErrAlreadyReaped indicates an operation referenced a ProcID whose
	// process has already been reaped by a prior Wait call.
	ErrAlreadyReaped = errors.New("process already reaped")
	// ErrSignalFailed indicates the process group could not be signaled.
	ErrSignalFailed = errors.New("failed to signal process group")
)
