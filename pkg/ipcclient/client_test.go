// SPDX-License-Identifier: BSD-3-Clause

package ipcclient

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/ya7on/tutti/pkg/ipcframe"
	"github.com/ya7on/tutti/pkg/tuttiapi"
)

// fakeServer answers every Ping with a Pong and otherwise echoes nothing,
// standing in for ipcserver so this package's tests do not depend on it.
func fakeServer(t *testing.T, conn net.Conn, push <-chan tuttiapi.TuttiApi) {
	t.Helper()
	enc := ipcframe.NewEncoder(conn)
	dec := ipcframe.NewDecoder(conn)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			msg, err := dec.Decode()
			if err != nil {
				return
			}
			if _, ok := msg.Body.(*tuttiapi.Ping); ok {
				_ = enc.Encode(tuttiapi.TuttiMessage{ID: msg.ID, Kind: tuttiapi.KindResponse, Body: &tuttiapi.Pong{}})
			}
		}
	}()

	for evt := range push {
		_ = enc.Encode(tuttiapi.TuttiMessage{ID: tuttiapi.StreamID, Kind: tuttiapi.KindStream, Body: evt})
	}
	<-done
}

func TestPingRoundTrip(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()

	push := make(chan tuttiapi.TuttiApi)
	defer close(push)
	go fakeServer(t, serverConn, push)

	c := newClient(clientConn)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ok, err := c.Ping(ctx)
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if !ok {
		t.Fatal("Ping returned false, want true")
	}
}

func TestSubscribeReceivesStreamFrames(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()

	push := make(chan tuttiapi.TuttiApi)
	defer close(push)
	go fakeServer(t, serverConn, push)

	c := newClient(clientConn)
	defer c.Close()

	sub := c.Subscribe()

	push <- &tuttiapi.Log{Service: "web", Message: "started"}

	select {
	case evt := <-sub:
		log, ok := evt.(*tuttiapi.Log)
		if !ok || log.Service != "web" {
			t.Fatalf("got %+v, want Log for web", evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for stream frame")
	}
}

// TestResponsesMatchedByIDOutOfOrder issues two concurrent Pings and has
// the server answer the second one first; each call must still resolve to
// its own response.
func TestResponsesMatchedByIDOutOfOrder(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()

	go func() {
		enc := ipcframe.NewEncoder(serverConn)
		dec := ipcframe.NewDecoder(serverConn)

		var ids []uint32
		for len(ids) < 2 {
			msg, err := dec.Decode()
			if err != nil {
				return
			}
			ids = append(ids, msg.ID)
		}

		// Reply to the later request first.
		_ = enc.Encode(tuttiapi.TuttiMessage{ID: ids[1], Kind: tuttiapi.KindResponse, Body: &tuttiapi.Pong{}})
		_ = enc.Encode(tuttiapi.TuttiMessage{ID: ids[0], Kind: tuttiapi.KindResponse, Body: &tuttiapi.Pong{}})
	}()

	c := newClient(clientConn)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			ok, err := c.Ping(ctx)
			if err == nil && !ok {
				err = ErrUnexpectedBody
			}
			results <- err
		}()
	}

	for i := 0; i < 2; i++ {
		select {
		case err := <-results:
			if err != nil {
				t.Fatalf("Ping %d: %v", i, err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for multiplexed responses")
		}
	}
}

func TestSendAfterCloseReturnsErrClosed(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()

	c := newClient(clientConn)
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	_, err := c.Ping(context.Background())
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("Ping after Close: got %v, want ErrClosed", err)
	}
}
