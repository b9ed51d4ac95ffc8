// SPDX-License-Identifier: BSD-3-Clause

package log

import "errors"

var (
	// ErrHandlerCreation indicates a log handler could not be built.
	ErrHandlerCreation = errors.New("failed to create log handler")
	// ErrTelemetryProvider indicates the OpenTelemetry logger provider
	// was unavailable or misconfigured.
	ErrTelemetryProvider = errors.New("OpenTelemetry provider error")
)
