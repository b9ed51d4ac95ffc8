// SPDX-License-Identifier: BSD-3-Clause

package ipcserver

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/ya7on/tutti/pkg/ipcframe"
	"github.com/ya7on/tutti/pkg/tuttiapi"
)

func echoHandler(_ context.Context, body tuttiapi.TuttiApi) (tuttiapi.TuttiApi, error) {
	if _, ok := body.(*tuttiapi.Ping); ok {
		return &tuttiapi.Pong{}, nil
	}

	return &tuttiapi.Pong{}, nil
}

func TestHandleConnAnswersUnaryRequest(t *testing.T) {
	srv, err := NewServer(echoHandler)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.handleConn(ctx, serverConn)

	enc := ipcframe.NewEncoder(clientConn)
	if err := enc.Encode(tuttiapi.TuttiMessage{ID: 1, Kind: tuttiapi.KindRequest, Body: &tuttiapi.Ping{}}); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	clientConn.SetReadDeadline(time.Now().Add(2 * time.Second))
	dec := ipcframe.NewDecoder(clientConn)
	resp, err := dec.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if resp.ID != 1 || resp.Kind != tuttiapi.KindResponse {
		t.Fatalf("got %+v, want response to id 1", resp)
	}
	if _, ok := resp.Body.(*tuttiapi.Pong); !ok {
		t.Fatalf("got body type %T, want *Pong", resp.Body)
	}
}

func TestHandleConnForwardsStreamEvents(t *testing.T) {
	srv, err := NewServer(echoHandler)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.handleConn(ctx, serverConn)

	events := make(chan tuttiapi.TuttiApi, 1)
	go srv.ForwardEvents(ctx, events)

	// Give the connection goroutine time to subscribe before publishing,
	// since Fanout only reaches subscribers registered at Send time.
	time.Sleep(20 * time.Millisecond)
	events <- &tuttiapi.Log{Service: "web", Message: "hello"}

	clientConn.SetReadDeadline(time.Now().Add(2 * time.Second))
	dec := ipcframe.NewDecoder(clientConn)
	got, err := dec.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.ID != tuttiapi.StreamID || got.Kind != tuttiapi.KindStream {
		t.Fatalf("got %+v, want a stream frame", got)
	}
	logMsg, ok := got.Body.(*tuttiapi.Log)
	if !ok || logMsg.Service != "web" {
		t.Fatalf("got body %+v, want Log for service web", got.Body)
	}
}
