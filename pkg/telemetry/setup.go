// SPDX-License-Identifier: BSD-3-Clause

package telemetry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/log/noop"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

var (
	setupMu        sync.Mutex
	globalProvider *Provider

	defaultSetupOnce sync.Once
)

// Setup initializes OpenTelemetry for the daemon process: a tracer for
// supervisor commands (Up/Down), a meter for the running-service/restart/
// connected-client instruments, and (if an OTLP endpoint is configured)
// exporters for all three signals. It returns a shutdown function that
// flushes and stops the providers; call it during daemon teardown.
//
// Setup may be called at most once per process; a second call returns
// ErrAlreadyInitialized without touching the installed provider.
func Setup(ctx context.Context, opts ...Option) (func(context.Context) error, error) {
	setupMu.Lock()
	defer setupMu.Unlock()

	if globalProvider != nil {
		return func(context.Context) error { return nil }, ErrAlreadyInitialized
	}

	provider, err := NewProvider(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telemetry provider: %w", err)
	}

	globalProvider = provider

	shutdown := func(shutdownCtx context.Context) error {
		setupMu.Lock()
		defer setupMu.Unlock()

		if globalProvider == nil {
			return nil
		}

		err := globalProvider.Shutdown(shutdownCtx)
		globalProvider = nil

		return err
	}

	return shutdown, nil
}

// DefaultSetup initializes OpenTelemetry with NoOp exporters for callers
// that have not configured an OTLP endpoint: telemetry generation still
// happens, it just is not exported anywhere. It is a no-op if Setup already
// ran, and safe to call from multiple goroutines.
func DefaultSetup() {
	defaultSetupOnce.Do(func() {
		_, err := Setup(context.Background(), WithServiceName("tuttid"))
		if err != nil && !errors.Is(err, ErrAlreadyInitialized) {
			// Telemetry stays dark, but context propagation and the log
			// bridge must still resolve to working no-ops.
			global.SetLoggerProvider(noop.NewLoggerProvider())
			otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
				propagation.TraceContext{},
				propagation.Baggage{},
			))
		}
	})
}

// GetTracer returns a tracer with the given name from the installed
// provider, triggering DefaultSetup first if nothing has initialized
// telemetry yet.
func GetTracer(name string) trace.Tracer {
	DefaultSetup()

	setupMu.Lock()
	defer setupMu.Unlock()

	if globalProvider != nil {
		return globalProvider.Tracer(name)
	}

	return otel.GetTracerProvider().Tracer(name)
}

// GetMeter returns a meter with the given name from the installed provider,
// triggering DefaultSetup first if nothing has initialized telemetry yet.
func GetMeter(name string) metric.Meter {
	DefaultSetup()

	setupMu.Lock()
	defer setupMu.Unlock()

	if globalProvider != nil {
		return globalProvider.Meter(name)
	}

	return otel.GetMeterProvider().Meter(name)
}

// IsInitialized reports whether a global telemetry provider is installed.
func IsInitialized() bool {
	setupMu.Lock()
	defer setupMu.Unlock()

	return globalProvider != nil
}
