// SPDX-License-Identifier: BSD-3-Clause

package telemetry

import "errors"

var (
	// ErrInvalidExporterType indicates a Config with an exporter type
	// outside the declared set.
	ErrInvalidExporterType = errors.New("invalid exporter type")
	// ErrMissingEndpoint indicates an OTLP exporter was requested without
	// the endpoint it needs.
	ErrMissingEndpoint = errors.New("missing endpoint")
	// ErrInvalidConfiguration wraps any Config validation failure.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrExporterSetupFailed indicates an OTLP exporter could not be
	// constructed.
	ErrExporterSetupFailed = errors.New("exporter setup failed")
	// ErrShutdownFailed aggregates provider shutdown failures.
	ErrShutdownFailed = errors.New("shutdown failed")
	// ErrAlreadyInitialized is returned by a second Setup call; the first
	// provider stays installed.
	ErrAlreadyInitialized = errors.New("telemetry already initialized")
)
