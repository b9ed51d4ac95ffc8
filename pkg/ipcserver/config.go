// SPDX-License-Identifier: BSD-3-Clause

package ipcserver

import "log/slog"

const defaultOutboundQueueSize = 64

type config struct {
	logger            *slog.Logger
	outboundQueueSize int
}

// Option configures a Server.
type Option interface {
	apply(*config)
}

type loggerOption struct {
	logger *slog.Logger
}

func (o *loggerOption) apply(c *config) { c.logger = o.logger }

// WithLogger sets the logger used for per-connection diagnostics. Defaults
// to slog.Default() if not supplied.
func WithLogger(logger *slog.Logger) Option {
	return &loggerOption{logger: logger}
}

type outboundQueueSizeOption struct {
	size int
}

func (o *outboundQueueSizeOption) apply(c *config) { c.outboundQueueSize = o.size }

// WithOutboundQueueSize overrides the per-connection outbound queue's buffer
// capacity. A slow client can apply backpressure up to this many queued
// responses before the inbound loop blocks enqueueing further ones.
func WithOutboundQueueSize(size int) Option {
	return &outboundQueueSizeOption{size: size}
}

func newConfig(opts []Option) *config {
	c := &config{outboundQueueSize: defaultOutboundQueueSize}
	for _, opt := range opts {
		opt.apply(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}
