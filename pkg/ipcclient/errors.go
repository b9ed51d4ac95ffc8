// SPDX-License-Identifier: BSD-3-Clause

package ipcclient

import "errors"

var (
	// ErrClosed is returned by Send once the client's connection has been
	// closed, and by any in-flight Send whose response will now never
	// arrive.
	ErrClosed = errors.New("ipcclient: connection closed")
	// ErrUnexpectedBody names a response body whose type the caller did not
	// expect. No Client method returns it: Ping reports a non-Pong body as
	// false, and Up, Down and Shutdown treat any non-Error body as success.
	ErrUnexpectedBody = errors.New("ipcclient: unexpected response body type")
	// ErrRequestFailed wraps the message carried by a server Error
	// response body.
	ErrRequestFailed = errors.New("ipcclient: request failed")
)
