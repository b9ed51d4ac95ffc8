// SPDX-License-Identifier: BSD-3-Clause

package config

import "errors"

var (
	// ErrUnknownExtension indicates a configuration path's extension has
	// no registered parser.
	ErrUnknownExtension = errors.New("config: unknown file extension")
	// ErrValidation indicates the parsed project failed tuttiapi.Project's
	// own invariants (empty cmd, unresolved dep, cyclic dep, ...).
	ErrValidation = errors.New("config: invalid project")
)
