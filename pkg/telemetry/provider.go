// SPDX-License-Identifier: BSD-3-Clause

package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/log/noop"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Provider bundles the trace, metric, and log SDK providers built from one
// Config. A Provider with no exporters configured (the NoOp default) still
// hands out working tracers and meters; their output simply goes nowhere.
type Provider struct {
	cfg     *Config
	traces  *trace.TracerProvider
	metrics *sdkmetric.MeterProvider
	logs    *log.LoggerProvider
}

// NewProvider builds a Provider from opts, installs it as the process-wide
// OpenTelemetry default, and configures W3C context propagation.
func NewProvider(ctx context.Context, opts ...Option) (*Provider, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("building resource: %w", err)
	}

	p := &Provider{cfg: cfg}

	if cfg.enableTraces {
		if p.traces, err = newTraceProvider(ctx, cfg, res); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExporterSetupFailed, err)
		}
	}
	if cfg.enableMetrics {
		if p.metrics, err = newMeterProvider(ctx, cfg, res); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExporterSetupFailed, err)
		}
	}
	if cfg.enableLogs {
		if p.logs, err = newLoggerProvider(ctx, cfg, res); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExporterSetupFailed, err)
		}
	}

	p.install()

	return p, nil
}

// Tracer returns a tracer with the given name.
func (p *Provider) Tracer(name string) oteltrace.Tracer {
	if p.traces == nil {
		return tracenoop.NewTracerProvider().Tracer(name)
	}

	return p.traces.Tracer(name)
}

// Meter returns a meter with the given name.
func (p *Provider) Meter(name string) metric.Meter {
	if p.metrics == nil {
		return metricnoop.NewMeterProvider().Meter(name)
	}

	return p.metrics.Meter(name)
}

// Shutdown flushes and stops every configured SDK provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error

	if p.traces != nil {
		errs = append(errs, p.traces.Shutdown(ctx))
	}
	if p.metrics != nil {
		errs = append(errs, p.metrics.Shutdown(ctx))
	}
	if p.logs != nil {
		errs = append(errs, p.logs.Shutdown(ctx))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrShutdownFailed, err)
	}

	return nil
}

func (c *Config) validate() error {
	switch c.exporterType {
	case NoOp:
	case OTLPgRPC:
		if c.grpcEndpoint == "" {
			return ErrMissingEndpoint
		}
	case OTLPHTTP:
		if c.httpEndpoint == "" {
			return ErrMissingEndpoint
		}
	case Dual:
		if c.grpcEndpoint == "" || c.httpEndpoint == "" {
			return ErrMissingEndpoint
		}
	default:
		return ErrInvalidExporterType
	}

	if c.samplingRatio < 0.0 || c.samplingRatio > 1.0 {
		return fmt.Errorf("sampling ratio must be between 0.0 and 1.0, got %f", c.samplingRatio)
	}

	return nil
}

// newResource describes this process to whatever collector receives its
// telemetry: service name/version plus any caller-supplied attributes.
func newResource(cfg *Config) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(cfg.serviceName),
		semconv.ServiceVersion(cfg.serviceVersion),
	}
	for key, value := range cfg.resourceAttrs {
		attrs = append(attrs, attribute.String(key, value))
	}

	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, attrs...),
	)
}

func newTraceProvider(ctx context.Context, cfg *Config, res *resource.Resource) (*trace.TracerProvider, error) {
	opts := []trace.TracerProviderOption{
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(cfg.samplingRatio)),
	}

	if cfg.exportHTTP() {
		hopts := []otlptracehttp.Option{
			otlptracehttp.WithEndpoint(cfg.httpEndpoint),
			otlptracehttp.WithHeaders(cfg.headers),
			otlptracehttp.WithTimeout(cfg.timeout),
		}
		if cfg.insecure {
			hopts = append(hopts, otlptracehttp.WithInsecure())
		}
		exp, err := otlptracehttp.New(ctx, hopts...)
		if err != nil {
			return nil, fmt.Errorf("http trace exporter: %w", err)
		}
		opts = append(opts, spanBatcher(cfg, exp))
	}

	if cfg.exportGRPC() {
		gopts := []otlptracegrpc.Option{
			otlptracegrpc.WithEndpoint(cfg.grpcEndpoint),
			otlptracegrpc.WithHeaders(cfg.headers),
			otlptracegrpc.WithTimeout(cfg.timeout),
		}
		if cfg.insecure {
			gopts = append(gopts, otlptracegrpc.WithInsecure())
		}
		exp, err := otlptracegrpc.New(ctx, gopts...)
		if err != nil {
			return nil, fmt.Errorf("grpc trace exporter: %w", err)
		}
		opts = append(opts, spanBatcher(cfg, exp))
	}

	return trace.NewTracerProvider(opts...), nil
}

func spanBatcher(cfg *Config, exp trace.SpanExporter) trace.TracerProviderOption {
	return trace.WithBatcher(exp,
		trace.WithBatchTimeout(cfg.batchTimeout),
		trace.WithMaxExportBatchSize(cfg.maxExportBatch),
		trace.WithMaxQueueSize(cfg.maxQueueSize),
	)
}

func newMeterProvider(ctx context.Context, cfg *Config, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	opts := []sdkmetric.Option{
		sdkmetric.WithResource(res),
	}

	if cfg.exportHTTP() {
		hopts := []otlpmetrichttp.Option{
			otlpmetrichttp.WithEndpoint(cfg.httpEndpoint),
			otlpmetrichttp.WithHeaders(cfg.headers),
			otlpmetrichttp.WithTimeout(cfg.timeout),
		}
		if cfg.insecure {
			hopts = append(hopts, otlpmetrichttp.WithInsecure())
		}
		exp, err := otlpmetrichttp.New(ctx, hopts...)
		if err != nil {
			return nil, fmt.Errorf("http metric exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(cfg.batchTimeout))))
	}

	if cfg.exportGRPC() {
		gopts := []otlpmetricgrpc.Option{
			otlpmetricgrpc.WithEndpoint(cfg.grpcEndpoint),
			otlpmetricgrpc.WithHeaders(cfg.headers),
			otlpmetricgrpc.WithTimeout(cfg.timeout),
		}
		if cfg.insecure {
			gopts = append(gopts, otlpmetricgrpc.WithInsecure())
		}
		exp, err := otlpmetricgrpc.New(ctx, gopts...)
		if err != nil {
			return nil, fmt.Errorf("grpc metric exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(cfg.batchTimeout))))
	}

	return sdkmetric.NewMeterProvider(opts...), nil
}

func newLoggerProvider(ctx context.Context, cfg *Config, res *resource.Resource) (*log.LoggerProvider, error) {
	opts := []log.LoggerProviderOption{
		log.WithResource(res),
	}

	if cfg.exportHTTP() {
		hopts := []otlploghttp.Option{
			otlploghttp.WithEndpoint(cfg.httpEndpoint),
			otlploghttp.WithHeaders(cfg.headers),
			otlploghttp.WithTimeout(cfg.timeout),
		}
		if cfg.insecure {
			hopts = append(hopts, otlploghttp.WithInsecure())
		}
		exp, err := otlploghttp.New(ctx, hopts...)
		if err != nil {
			return nil, fmt.Errorf("http log exporter: %w", err)
		}
		opts = append(opts, log.WithProcessor(log.NewBatchProcessor(exp)))
	}

	if cfg.exportGRPC() {
		gopts := []otlploggrpc.Option{
			otlploggrpc.WithEndpoint(cfg.grpcEndpoint),
			otlploggrpc.WithHeaders(cfg.headers),
			otlploggrpc.WithTimeout(cfg.timeout),
		}
		if cfg.insecure {
			gopts = append(gopts, otlploggrpc.WithInsecure())
		}
		exp, err := otlploggrpc.New(ctx, gopts...)
		if err != nil {
			return nil, fmt.Errorf("grpc log exporter: %w", err)
		}
		opts = append(opts, log.WithProcessor(log.NewBatchProcessor(exp)))
	}

	return log.NewLoggerProvider(opts...), nil
}

// install makes p the process-wide default and configures W3C trace-context
// and baggage propagation.
func (p *Provider) install() {
	if p.traces != nil {
		otel.SetTracerProvider(p.traces)
	}
	if p.metrics != nil {
		otel.SetMeterProvider(p.metrics)
	}
	if p.logs != nil {
		global.SetLoggerProvider(p.logs)
	} else {
		global.SetLoggerProvider(noop.NewLoggerProvider())
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}
