// SPDX-License-Identifier: BSD-3-Clause

// Package tuttiapi defines the types shared between every other package in
// this module: the project/service configuration shape, and the message
// envelope carried over the IPC socket between tutti daemons and tutti
// clients.
//
// Everything in this package is a plain, JSON-serializable value. The
// Supervisor Core is the only component that owns the mutable derivatives of
// these types (RunningService); everything else treats them as immutable
// snapshots passed by value.
package tuttiapi
