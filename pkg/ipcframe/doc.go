// SPDX-License-Identifier: BSD-3-Clause

// Package ipcframe implements the wire framing tutti's IPC socket uses: a
// big-endian uint32 length prefix followed by that many bytes of a
// JSON-encoded tuttiapi.TuttiMessage. It is implemented directly over
// io.Reader/io.Writer since the standard library has no length-delimited
// codec of its own, and a frame is small enough to buffer whole.
package ipcframe
