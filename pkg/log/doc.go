// SPDX-License-Identifier: BSD-3-Clause

// Package log provides structured logging functionality with multi-target output
// support for console and OpenTelemetry observability. The package integrates
// multiple logging libraries to provide a unified interface that outputs
// human-readable logs to the console while simultaneously sending structured
// telemetry data to OpenTelemetry for distributed tracing and monitoring.
//
// The package is built around Go's standard library slog package and provides
// adapters for other logging systems, such as the oversight supervision tree
// used by cmd/tuttid's internal goroutines. This allows for consistent
// structured logging across every component of the daemon.
//
// # Core Features
//
// The package provides several key features:
//
//   - Dual output: Human-readable console logs and structured OpenTelemetry data
//   - Standard library slog integration for structured logging
//   - Oversight process supervisor logger integration
//   - Automatic timestamp and debug level configuration
//
// # Basic Usage
//
// Creating and using the default logger:
//
//	logger := log.NewDefaultLogger()
//	logger.Info("supervisor starting", "version", "1.0.0", "config", "/etc/tutti/tutti.toml")
//	logger.Debug("debug information", "module", "supervisor", "service_count", 5)
//	logger.Error("operation failed", "error", err, "operation", "spawn")
//
// Using the global logger:
//
//	log.RedirectStdLog(log.GetGlobalLogger()) // Redirect the standard library log package
//	slog.Info("this will now use the configured logger with dual output")
//
// # Structured Logging
//
// The logger supports structured logging with key-value pairs:
//
//	func handleServiceSpawn(service string, procID process.ProcID) {
//		logger := log.GetGlobalLogger()
//
//		logger.Info("service spawned",
//			"service", service,
//			"proc_id", procID,
//		)
//
//		// ...
//
//		logger.Debug("readiness resolved",
//			"service", service,
//			"method", "inline",
//		)
//	}
//
// # Error Logging with Context
//
// Enhanced error logging with contextual information:
//
//	func (s *Supervisor) spawnProcess(ctx context.Context, rec *record) {
//		logger := log.GetGlobalLogger()
//
//		logger.Info("spawning service",
//			"service", rec.key.name,
//			"project", rec.key.projectID,
//		)
//
//		if err != nil {
//			logger.Error("spawn failed",
//				"service", rec.key.name,
//				"project", rec.key.projectID,
//				"error", err,
//			)
//			return
//		}
//	}
//
// # Oversight Integration
//
// Using the oversight logger adapter for consistent logging from the
// daemon's internal supervision tree:
//
//	func setupDaemon(logger *slog.Logger) *oversight.Tree {
//		return oversight.New(
//			oversight.WithLogger(log.NewOversightLogger(logger)),
//			oversight.Processes(supervisorProcess, ipcServerProcess),
//		)
//	}
//
// # Thread Safety
//
// All logger instances are safe for concurrent use from multiple goroutines.
// The underlying slog and zerolog implementations handle concurrent access
// appropriately.
//
// # Performance Considerations
//
// The dual-output design has minimal performance impact:
//
//   - Console output uses zerolog's human-readable console writer
//   - OpenTelemetry output is asynchronous and batched
//   - Debug level logs are only processed when debug logging is enabled
package log
