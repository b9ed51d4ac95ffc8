// SPDX-License-Identifier: BSD-3-Clause

package tuttiapi

import "errors"

var (
	// ErrInvalidProjectPath indicates a project's configuration path could
	// not be resolved to an absolute path.
	ErrInvalidProjectPath = errors.New("invalid project path")
	// ErrEmptyCmd indicates a service declared an empty argv.
	ErrEmptyCmd = errors.New("cmd must not be empty")
	// ErrBlankCmdElement indicates a service's argv contains a blank
	// element after trimming whitespace.
	ErrBlankCmdElement = errors.New("cmd must not contain blank elements")
	// ErrInvalidRestartPolicy indicates a service declared a restart
	// policy other than "always" or "never".
	ErrInvalidRestartPolicy = errors.New("invalid restart policy")
	// ErrUnknownDependency indicates a service depends on a name that does
	// not exist in the same project.
	ErrUnknownDependency = errors.New("dependency does not resolve within project")
	// ErrCyclicDependency indicates the dependency relation over a
	// project's services is not acyclic.
	ErrCyclicDependency = errors.New("cyclic dependency")
	// ErrUnknownMessageKind indicates a frame's kind discriminant did not
	// match Request, Response, or Stream.
	ErrUnknownMessageKind = errors.New("unknown message kind")
	// ErrUnknownAPIVariant indicates a frame's body tag did not match any
	// known TuttiApi variant.
	ErrUnknownAPIVariant = errors.New("unknown API variant")
)
