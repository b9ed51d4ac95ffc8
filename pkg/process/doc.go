// SPDX-License-Identifier: BSD-3-Clause

// Package process spawns, signals, and reaps the child processes a tutti
// project declares. Every child is placed in its own process group at spawn
// time so that a single signal delivered to the group reaches the child and
// anything it has forked, which is what lets Shutdown/Kill tear down whole
// subtrees atomically.
//
// Stdout and stderr are exposed as lazy byte-chunk channels rather than
// line-oriented readers: a chunk is whatever a single read off the pipe
// produced, and both channels close when the child closes that pipe. The
// Supervisor Core treats stdout closure as the canonical "process exited"
// signal (see pkg/supervisor), so Manager never needs a separate reaper
// goroutine wired back into the supervisor; Wait exists purely for staged
// teardown, the graceful-then-forced kill sequence.
package process
