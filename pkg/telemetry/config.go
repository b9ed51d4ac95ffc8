// SPDX-License-Identifier: BSD-3-Clause

package telemetry

import (
	"time"
)

// ExporterType defines the type of telemetry exporter to use.
type ExporterType int

const (
	// NoOp discards all telemetry data with minimal overhead. This is the
	// default: tuttid runs fully offline unless an OTLP endpoint is
	// configured.
	NoOp ExporterType = iota
	// OTLPgRPC exports telemetry data via OTLP over gRPC.
	OTLPgRPC
	// OTLPHTTP exports telemetry data via OTLP over HTTP.
	OTLPHTTP
	// Dual exports telemetry data over both gRPC and HTTP, for collectors
	// that split signal intake across the two protocols.
	Dual
)

// Config holds the configuration for telemetry providers.
type Config struct {
	exporterType   ExporterType
	grpcEndpoint   string
	httpEndpoint   string
	headers        map[string]string
	timeout        time.Duration
	batchTimeout   time.Duration
	maxExportBatch int
	maxQueueSize   int
	serviceName    string
	serviceVersion string
	enableMetrics  bool
	enableTraces   bool
	enableLogs     bool
	insecure       bool
	samplingRatio  float64
	resourceAttrs  map[string]string
}

// exportGRPC reports whether the configuration calls for a gRPC exporter.
func (c *Config) exportGRPC() bool {
	return c.exporterType == OTLPgRPC || c.exporterType == Dual
}

// exportHTTP reports whether the configuration calls for an HTTP exporter.
func (c *Config) exportHTTP() bool {
	return c.exporterType == OTLPHTTP || c.exporterType == Dual
}

// DefaultConfig returns a default configuration for telemetry providers.
func DefaultConfig() *Config {
	return &Config{
		exporterType:   NoOp,
		timeout:        30 * time.Second,
		batchTimeout:   5 * time.Second,
		maxExportBatch: 512,
		maxQueueSize:   2048,
		serviceName:    "tutti",
		serviceVersion: "1.0.0",
		enableMetrics:  true,
		enableTraces:   true,
		enableLogs:     true,
		insecure:       false,
		samplingRatio:  1.0,
		headers:        make(map[string]string),
		resourceAttrs:  make(map[string]string),
	}
}

// Option defines a function that modifies the telemetry configuration.
type Option func(*Config)

// WithGRPCEndpoint configures OTLP gRPC export to endpoint. Combined with a
// prior WithHTTPEndpoint it upgrades the configuration to Dual export.
func WithGRPCEndpoint(endpoint string) Option {
	return func(c *Config) {
		if c.exporterType == OTLPHTTP || c.exporterType == Dual {
			c.exporterType = Dual
		} else {
			c.exporterType = OTLPgRPC
		}
		c.grpcEndpoint = endpoint
	}
}

// WithHTTPEndpoint configures OTLP HTTP export to endpoint. Combined with a
// prior WithGRPCEndpoint it upgrades the configuration to Dual export.
func WithHTTPEndpoint(endpoint string) Option {
	return func(c *Config) {
		if c.exporterType == OTLPgRPC || c.exporterType == Dual {
			c.exporterType = Dual
		} else {
			c.exporterType = OTLPHTTP
		}
		c.httpEndpoint = endpoint
	}
}

// WithHeaders sets additional headers for the OTLP exporter.
func WithHeaders(headers map[string]string) Option {
	return func(c *Config) {
		c.headers = headers
	}
}

// WithTimeout sets the timeout for telemetry operations.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.timeout = timeout
	}
}

// WithServiceName sets the service name for telemetry data.
func WithServiceName(name string) Option {
	return func(c *Config) {
		c.serviceName = name
	}
}

// WithServiceVersion sets the service version for telemetry data.
func WithServiceVersion(version string) Option {
	return func(c *Config) {
		c.serviceVersion = version
	}
}

// WithMetrics enables or disables metrics collection.
func WithMetrics(enabled bool) Option {
	return func(c *Config) {
		c.enableMetrics = enabled
	}
}

// WithTraces enables or disables trace collection.
func WithTraces(enabled bool) Option {
	return func(c *Config) {
		c.enableTraces = enabled
	}
}

// WithLogs enables or disables log collection.
func WithLogs(enabled bool) Option {
	return func(c *Config) {
		c.enableLogs = enabled
	}
}

// WithInsecure enables or disables insecure connections to the OTLP endpoint.
func WithInsecure(insecure bool) Option {
	return func(c *Config) {
		c.insecure = insecure
	}
}

// WithSamplingRatio sets the sampling ratio for traces (0.0 to 1.0).
func WithSamplingRatio(ratio float64) Option {
	return func(c *Config) {
		if ratio < 0.0 {
			ratio = 0.0
		}
		if ratio > 1.0 {
			ratio = 1.0
		}
		c.samplingRatio = ratio
	}
}

// WithResourceAttributes sets additional resource attributes for telemetry data.
func WithResourceAttributes(attrs map[string]string) Option {
	return func(c *Config) {
		c.resourceAttrs = attrs
	}
}
