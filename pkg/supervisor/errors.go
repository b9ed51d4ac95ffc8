// SPDX-License-Identifier: BSD-3-Clause

package supervisor

import "errors"

var (
	// ErrProjectNotFound is surfaced as an Error event when a command
	// references a project with no stored configuration.
	ErrProjectNotFound = errors.New("supervisor: project not found")
	// ErrServiceNotFound is surfaced as an Error event when Up's closure
	// references a service name absent from the project.
	ErrServiceNotFound = errors.New("supervisor: service not found")
	// ErrCircularDependency is surfaced as an Error event when Up's
	// closure cannot be topologically sorted.
	ErrCircularDependency = errors.New("supervisor: circular dependency detected")
	// ErrProcessSpawnFailed is surfaced as an Error event when the
	// Process Manager cannot launch a service's command.
	ErrProcessSpawnFailed = errors.New("supervisor: process spawn failed")
	// ErrShuttingDown is returned to callers whose command arrives after
	// Shutdown has been accepted.
	ErrShuttingDown = errors.New("supervisor: supervisor is shutting down")
)
