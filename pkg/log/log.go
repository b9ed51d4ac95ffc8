// SPDX-License-Identifier: BSD-3-Clause

package log

import (
	"log/slog"
	"sync"

	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogzerolog "github.com/samber/slog-zerolog/v2"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log/global"
)

var (
	globalOnce   sync.Once
	globalLogger *slog.Logger
)

// NewDefaultLogger builds the structured logger both tutti binaries use: a
// zerolog console writer for human-readable output fanned out alongside an
// OpenTelemetry handler feeding the global logger provider, so every line is
// also available as an exported log record when an OTLP endpoint is
// configured.
func NewDefaultLogger() *slog.Logger {
	zeroLogger := zerolog.
		New(zerolog.NewConsoleWriter()).
		With().
		Timestamp().
		Logger()

	otelHandler := otelslog.NewHandler("tutti",
		otelslog.WithLoggerProvider(global.GetLoggerProvider()))

	return slog.New(slogmulti.Fanout(
		slogzerolog.Option{Level: slog.LevelDebug, Logger: &zeroLogger}.NewZerologHandler(),
		otelHandler,
	))
}

// GetGlobalLogger returns the process-wide logger, constructing it on first
// use. Every caller shares the same instance so console output and OTLP
// export stay consistent across subsystems.
func GetGlobalLogger() *slog.Logger {
	globalOnce.Do(func() {
		globalLogger = NewDefaultLogger()
	})

	return globalLogger
}
