// SPDX-License-Identifier: BSD-3-Clause

package ipcclient

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/ya7on/tutti/pkg/ipcframe"
	"github.com/ya7on/tutti/pkg/tuttiapi"
)

const defaultStreamBufferSize = 32

// Client multiplexes requests and a push stream over a single connection.
// Every exported method is safe for concurrent use.
type Client struct {
	conn   net.Conn
	logger *slog.Logger

	mu      sync.Mutex
	nextID  uint32
	pending map[uint32]chan tuttiapi.TuttiMessage

	streamMu sync.Mutex
	streams  []chan tuttiapi.TuttiApi

	outbound chan tuttiapi.TuttiMessage

	closeOnce sync.Once
	closed    chan struct{}
	closeErr  error
}

// Dial connects to address over network (typically "unix") and starts the
// client's background multiplexer goroutines.
func Dial(network, address string, opts ...Option) (*Client, error) {
	conn, err := net.Dial(network, address)
	if err != nil {
		return nil, fmt.Errorf("ipcclient: dial: %w", err)
	}

	return newClient(conn, opts...), nil
}

func newClient(conn net.Conn, opts ...Option) *Client {
	cfg := newConfig(opts)

	c := &Client{
		conn:     conn,
		logger:   cfg.logger,
		pending:  make(map[uint32]chan tuttiapi.TuttiMessage),
		outbound: make(chan tuttiapi.TuttiMessage, cfg.outboundQueueSize),
		closed:   make(chan struct{}),
	}

	go c.writeLoop()
	go c.readLoop()

	return c
}

// Close shuts down the connection. Any Send call still awaiting a response
// unblocks with ErrClosed, and every Subscribe channel is closed.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
		close(c.closed)

		c.mu.Lock()
		for id, ch := range c.pending {
			close(ch)
			delete(c.pending, id)
		}
		c.mu.Unlock()

		c.streamMu.Lock()
		for _, ch := range c.streams {
			close(ch)
		}
		c.streams = nil
		c.streamMu.Unlock()
	})

	return c.closeErr
}

// Subscribe registers a new channel that receives every Stream frame the
// server pushes for the remaining lifetime of the connection. The channel
// is closed when the Client is closed.
func (c *Client) Subscribe() <-chan tuttiapi.TuttiApi {
	ch := make(chan tuttiapi.TuttiApi, defaultStreamBufferSize)

	c.streamMu.Lock()
	c.streams = append(c.streams, ch)
	c.streamMu.Unlock()

	return ch
}

// Send issues a request and blocks until the matching response arrives, ctx
// is done, or the client is closed.
func (c *Client) Send(ctx context.Context, body tuttiapi.TuttiApi) (tuttiapi.TuttiApi, error) {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	respCh := make(chan tuttiapi.TuttiMessage, 1)
	c.pending[id] = respCh
	c.mu.Unlock()

	req := tuttiapi.TuttiMessage{ID: id, Kind: tuttiapi.KindRequest, Body: body}

	select {
	case c.outbound <- req:
	case <-c.closed:
		c.forgetPending(id)
		return nil, ErrClosed
	case <-ctx.Done():
		c.forgetPending(id)
		return nil, ctx.Err()
	}

	select {
	case resp, ok := <-respCh:
		if !ok {
			return nil, ErrClosed
		}
		return resp.Body, nil
	case <-c.closed:
		return nil, ErrClosed
	case <-ctx.Done():
		c.forgetPending(id)
		return nil, ctx.Err()
	}
}

func (c *Client) forgetPending(id uint32) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *Client) writeLoop() {
	enc := ipcframe.NewEncoder(c.conn)
	for {
		select {
		case <-c.closed:
			return
		case msg := <-c.outbound:
			if err := enc.Encode(msg); err != nil {
				c.logger.Warn("ipcclient: write failed, closing connection", "error", err)
				_ = c.Close()
				return
			}
		}
	}
}

func (c *Client) readLoop() {
	dec := ipcframe.NewDecoder(c.conn)
	for {
		msg, err := dec.Decode()
		if err != nil {
			_ = c.Close()
			return
		}

		if msg.ID == tuttiapi.StreamID {
			c.broadcastStream(msg.Body)
			continue
		}

		c.mu.Lock()
		respCh, ok := c.pending[msg.ID]
		if ok {
			delete(c.pending, msg.ID)
		}
		c.mu.Unlock()

		if !ok {
			continue
		}
		respCh <- msg
	}
}

func (c *Client) broadcastStream(evt tuttiapi.TuttiApi) {
	c.streamMu.Lock()
	defer c.streamMu.Unlock()

	for _, ch := range c.streams {
		select {
		case ch <- evt:
		default:
			c.logger.Warn("ipcclient: dropping stream event, subscriber channel full")
		}
	}
}
