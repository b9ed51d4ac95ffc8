// SPDX-License-Identifier: BSD-3-Clause

package main

import "errors"

var (
	// ErrSystemDirUnavailable indicates the system directory could not be
	// created or is not writable.
	ErrSystemDirUnavailable = errors.New("tuttid: system directory unavailable")
	// ErrStaleSocket indicates a leftover socket file could not be removed
	// before binding a fresh listener.
	ErrStaleSocket = errors.New("tuttid: could not remove stale socket")
	// ErrListenFailed indicates the Unix socket listener could not be
	// created.
	ErrListenFailed = errors.New("tuttid: listen failed")
	// ErrServerInit indicates the IPC server could not be constructed.
	ErrServerInit = errors.New("tuttid: ipc server init failed")
	// ErrAddChild indicates a supervised goroutine could not be added to
	// the oversight tree.
	ErrAddChild = errors.New("tuttid: failed to add supervised child")
	// ErrPanicked indicates the daemon recovered from a panic while
	// running.
	ErrPanicked = errors.New("tuttid: panicked")
)
