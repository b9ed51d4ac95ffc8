// SPDX-License-Identifier: BSD-3-Clause

package ipcframe

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ya7on/tutti/pkg/tuttiapi"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	want := tuttiapi.TuttiMessage{ID: 7, Kind: tuttiapi.KindRequest, Body: &tuttiapi.Ping{}}
	if err := NewEncoder(&buf).Encode(want); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := NewDecoder(&buf).Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.ID != want.ID || got.Kind != want.Kind {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if _, ok := got.Body.(*tuttiapi.Ping); !ok {
		t.Fatalf("got body type %T, want *Ping", got.Body)
	}
}

func TestEncodeDecodeMultipleFrames(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	msgs := []tuttiapi.TuttiMessage{
		{ID: 1, Kind: tuttiapi.KindRequest, Body: &tuttiapi.Ping{}},
		{ID: 1, Kind: tuttiapi.KindResponse, Body: &tuttiapi.Pong{}},
		{ID: tuttiapi.StreamID, Kind: tuttiapi.KindStream, Body: &tuttiapi.Log{Service: "web", Message: "listening"}},
	}
	for _, m := range msgs {
		if err := enc.Encode(m); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	dec := NewDecoder(&buf)
	for i, want := range msgs {
		got, err := dec.Decode()
		if err != nil {
			t.Fatalf("Decode frame %d: %v", i, err)
		}
		if got.ID != want.ID || got.Kind != want.Kind {
			t.Fatalf("frame %d: got %+v, want %+v", i, got, want)
		}
	}

	if _, err := dec.Decode(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF after last frame, got %v", err)
	}
}

func TestDecodeRejectsOversizedFrame(t *testing.T) {
	var buf bytes.Buffer
	var prefix [4]byte
	prefix[0] = 0xFF
	prefix[1] = 0xFF
	prefix[2] = 0xFF
	prefix[3] = 0xFF
	buf.Write(prefix[:])

	if _, err := NewDecoder(&buf).Decode(); !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("got %v, want ErrFrameTooLarge", err)
	}
}

func TestDecodeRejectsMalformedPayload(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("not json")
	var prefix [4]byte
	prefix[3] = byte(len(payload))
	buf.Write(prefix[:])
	buf.Write(payload)

	if _, err := NewDecoder(&buf).Decode(); !errors.Is(err, ErrDecode) {
		t.Fatalf("got %v, want ErrDecode", err)
	}
}

func TestDecodeEmptyReaderReturnsEOF(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewDecoder(&buf).Decode(); !errors.Is(err, io.EOF) {
		t.Fatalf("got %v, want io.EOF", err)
	}
}
