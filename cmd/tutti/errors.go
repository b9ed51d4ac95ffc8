// SPDX-License-Identifier: BSD-3-Clause

package main

import "errors"

var (
	// ErrDaemonBinaryNotFound indicates the tuttid executable could not be
	// located next to the CLI binary or on PATH.
	ErrDaemonBinaryNotFound = errors.New("tutti: tuttid binary not found")
	// ErrDaemonUnreachable indicates the CLI could not connect to the
	// daemon's socket: for run, even after attempting to auto-spawn it; for
	// daemon stop, with no spawn attempt.
	ErrDaemonUnreachable = errors.New("tutti: daemon unreachable")
	// ErrProjectRejected indicates the daemon surfaced an Error event in
	// response to an Up request.
	ErrProjectRejected = errors.New("tutti: project rejected by daemon")
)
