// SPDX-License-Identifier: BSD-3-Clause

package ipcserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"go.opentelemetry.io/otel/metric"

	"github.com/ya7on/tutti/pkg/fanout"
	"github.com/ya7on/tutti/pkg/ipcframe"
	"github.com/ya7on/tutti/pkg/tuttiapi"
)

// Handler answers one unary request, returning the TuttiApi body to send
// back as the matching response. Handler is invoked from the connection's
// inbound goroutine; a long-running Handler delays only that connection's
// further requests, not other connections.
type Handler func(ctx context.Context, body tuttiapi.TuttiApi) (tuttiapi.TuttiApi, error)

// Server accepts connections on a listener and serves the ipcframe protocol
// on each one, dispatching requests to a Handler and republishing
// supervisor events to every connected client via a shared Fanout.
type Server struct {
	cfg     *config
	handler Handler
	events  *fanout.Fanout[tuttiapi.TuttiMessage]

	connectedClients metric.Int64UpDownCounter
}

// NewServer constructs a Server. handler must not be nil.
func NewServer(handler Handler, opts ...Option) (*Server, error) {
	if handler == nil {
		return nil, ErrNoHandler
	}

	cfg := newConfig(opts)

	return &Server{
		cfg:              cfg,
		handler:          handler,
		events:           fanout.New[tuttiapi.TuttiMessage](),
		connectedClients: newConnectedClientsInstrument(cfg.logger),
	}, nil
}

// ForwardEvents reads supervisor events until events is closed or ctx is
// done, republishing each as a Stream frame to every connected client. It is
// meant to run as its own goroutine for the lifetime of the server, so a
// single forwarder serializes all Stream publications.
func (s *Server) ForwardEvents(ctx context.Context, events <-chan tuttiapi.TuttiApi) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			s.events.Send(tuttiapi.TuttiMessage{
				ID:   tuttiapi.StreamID,
				Kind: tuttiapi.KindStream,
				Body: evt,
			})
		}
	}
}

// Serve accepts connections from ln until ctx is done or Accept fails. Each
// connection is served by its own pair of goroutines and Serve does not wait
// for in-flight connections to finish before returning.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ErrListenerClosed
			}

			return fmt.Errorf("ipcserver: accept: %w", err)
		}

		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	logger := s.cfg.logger.With("remote", conn.RemoteAddr())
	defer conn.Close()

	s.recordClientConnected()
	defer s.recordClientDisconnected()

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Unblock the inbound goroutine's pending Decode on shutdown; without
	// this a server canceled mid-read would wait on the client forever.
	go func() {
		<-connCtx.Done()
		_ = conn.Close()
	}()

	done := make(chan struct{})
	stream := s.events.Subscribe(done)
	defer close(done)

	outbound := make(chan tuttiapi.TuttiMessage, s.cfg.outboundQueueSize)

	outboundDone := make(chan struct{})
	go func() {
		defer close(outboundDone)
		s.runOutbound(connCtx, conn, outbound, stream, logger)
	}()

	s.runInbound(connCtx, conn, outbound, logger)

	cancel()
	<-outboundDone
}

// runInbound decodes frames and dispatches requests until the connection
// closes or its context is canceled. Malformed and non-request frames are
// logged and skipped; a handler error is answered with an Error response
// body; an oversized frame closes the connection.
func (s *Server) runInbound(ctx context.Context, conn net.Conn, outbound chan<- tuttiapi.TuttiMessage, logger *slog.Logger) {
	dec := ipcframe.NewDecoder(conn)

	for {
		msg, err := dec.Decode()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
				return
			}
			if errors.Is(err, ipcframe.ErrFrameTooLarge) {
				logger.Error("closing connection after oversized frame", "error", err)
				return
			}

			logger.Warn("discarding malformed frame", "error", err)
			continue
		}

		if msg.Kind != tuttiapi.KindRequest {
			logger.Warn("discarding non-request frame from client", "kind", msg.Kind)
			continue
		}

		resp, err := s.handler(ctx, msg.Body)
		if err != nil {
			resp = &tuttiapi.Error{Message: err.Error()}
		}

		select {
		case outbound <- tuttiapi.TuttiMessage{ID: msg.ID, Kind: tuttiapi.KindResponse, Body: resp}:
		case <-ctx.Done():
			return
		}
	}
}

// runOutbound drains both the connection's direct response queue and its
// subscribed Stream frames, writing each to conn in the order received.
func (s *Server) runOutbound(ctx context.Context, conn net.Conn, outbound <-chan tuttiapi.TuttiMessage, stream <-chan tuttiapi.TuttiMessage, logger *slog.Logger) {
	enc := ipcframe.NewEncoder(conn)

	for {
		var msg tuttiapi.TuttiMessage
		select {
		case <-ctx.Done():
			return
		case msg = <-outbound:
		case msg = <-stream:
		}

		if err := enc.Encode(msg); err != nil {
			logger.Warn("closing connection after write failure", "error", err)
			return
		}
	}
}
