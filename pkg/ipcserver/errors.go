// SPDX-License-Identifier: BSD-3-Clause

package ipcserver

import "errors"

var (
	// ErrListenerClosed is returned by Serve when Accept fails after its
	// context was canceled (Serve closes the listener itself on cancel),
	// distinguishing an orderly shutdown from an accept failure.
	ErrListenerClosed = errors.New("ipcserver: listener closed")
	// ErrNoHandler is returned if a Server is constructed without a
	// request Handler.
	ErrNoHandler = errors.New("ipcserver: no handler configured")
)
