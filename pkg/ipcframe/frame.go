// SPDX-License-Identifier: BSD-3-Clause

package ipcframe

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ya7on/tutti/pkg/tuttiapi"
)

// MaxFrameSize bounds the length prefix a Decoder will accept, guarding
// against a hostile or corrupt peer declaring an unbounded payload.
const MaxFrameSize = 16 * 1024 * 1024

// Encoder writes length-delimited TuttiMessage frames to an underlying
// writer. It is not safe for concurrent use by multiple goroutines; the IPC
// server and client each serialize their own writes through a single
// outbound goroutine.
type Encoder struct {
	w io.Writer
}

// NewEncoder wraps w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes one frame: a 4-byte big-endian length prefix followed by
// msg's JSON encoding.
func (e *Encoder) Encode(msg tuttiapi.TuttiMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if len(payload) > MaxFrameSize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(payload))
	}

	var prefix [4]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(len(payload))) //nolint:gosec // bounded by MaxFrameSize above

	if _, err := e.w.Write(prefix[:]); err != nil {
		return fmt.Errorf("%w: writing length prefix: %w", ErrEncode, err)
	}
	if _, err := e.w.Write(payload); err != nil {
		return fmt.Errorf("%w: writing payload: %w", ErrEncode, err)
	}

	return nil
}

// Decoder reads length-delimited TuttiMessage frames from an underlying
// reader. It is not safe for concurrent use by multiple goroutines.
type Decoder struct {
	r io.Reader
}

// NewDecoder wraps r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads and deserializes the next frame. It returns io.EOF (possibly
// wrapped) when the underlying reader is exhausted at a frame boundary.
func (d *Decoder) Decode() (tuttiapi.TuttiMessage, error) {
	var prefix [4]byte
	if _, err := io.ReadFull(d.r, prefix[:]); err != nil {
		return tuttiapi.TuttiMessage{}, err
	}

	length := binary.BigEndian.Uint32(prefix[:])
	if length > MaxFrameSize {
		return tuttiapi.TuttiMessage{}, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, length)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(d.r, payload); err != nil {
		return tuttiapi.TuttiMessage{}, fmt.Errorf("%w: reading payload: %w", ErrDecode, err)
	}

	var msg tuttiapi.TuttiMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return tuttiapi.TuttiMessage{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return msg, nil
}
