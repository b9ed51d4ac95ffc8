// SPDX-License-Identifier: BSD-3-Clause

package ipcframe

import "errors"

var (
	// ErrFrameTooLarge indicates a frame's declared length prefix exceeds
	// MaxFrameSize. The connection should be torn down; this is not a
	// recoverable decode error.
	ErrFrameTooLarge = errors.New("frame exceeds maximum size")
	// ErrDecode indicates a frame's payload could not be deserialized
	// into a TuttiMessage. The connection continues: the caller should
	// log and skip rather than tear down.
	ErrDecode = errors.New("failed to decode frame")
	// ErrEncode indicates a TuttiMessage could not be serialized.
	ErrEncode = errors.New("failed to encode frame")
)
