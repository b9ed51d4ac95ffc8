// SPDX-License-Identifier: BSD-3-Clause

// Package supervisor implements the single-owner state machine that tracks
// every project's declared services, drives their dependency-ordered
// startup, and performs staged teardown. Its surface is a pair of channels:
// callers send commands and observe emitted TuttiApi events. All mutable
// state (the stored Project snapshots and the per-(project, service)
// service records) is touched only from the goroutine running Run,
// so none of it needs a lock; this mirrors the actor-style split between a
// thin façade and a private background task.
package supervisor
