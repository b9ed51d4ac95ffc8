// SPDX-License-Identifier: BSD-3-Clause

package supervisor

import (
	"log/slog"
	"time"
)

const (
	defaultCommandQueueSize = 100
	defaultEventQueueSize   = 100
	defaultKillTimeout      = 100 * time.Millisecond
)

type config struct {
	logger           *slog.Logger
	killTimeout      time.Duration
	commandQueueSize int
	eventQueueSize   int
}

// Option configures a Supervisor.
type Option interface {
	apply(*config)
}

type loggerOption struct{ logger *slog.Logger }

func (o *loggerOption) apply(c *config) { c.logger = o.logger }

// WithLogger sets the logger used for internal diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return &loggerOption{logger: logger}
}

type killTimeoutOption struct{ timeout time.Duration }

func (o *killTimeoutOption) apply(c *config) { c.killTimeout = o.timeout }

// WithKillTimeout overrides the grace period between a graceful shutdown
// signal and escalation to a forced kill during teardown.
func WithKillTimeout(timeout time.Duration) Option {
	return &killTimeoutOption{timeout: timeout}
}

type commandQueueSizeOption struct{ size int }

func (o *commandQueueSizeOption) apply(c *config) { c.commandQueueSize = o.size }

// WithCommandQueueSize overrides the inbound command channel's capacity.
func WithCommandQueueSize(size int) Option {
	return &commandQueueSizeOption{size: size}
}

type eventQueueSizeOption struct{ size int }

func (o *eventQueueSizeOption) apply(c *config) { c.eventQueueSize = o.size }

// WithEventQueueSize overrides the outbound event channel's capacity.
func WithEventQueueSize(size int) Option {
	return &eventQueueSizeOption{size: size}
}

func newConfig(opts []Option) *config {
	c := &config{
		killTimeout:      defaultKillTimeout,
		commandQueueSize: defaultCommandQueueSize,
		eventQueueSize:   defaultEventQueueSize,
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}
