// SPDX-License-Identifier: BSD-3-Clause

// Package telemetry provides OpenTelemetry integration for the tutti
// daemon. It simplifies the setup and configuration of OpenTelemetry
// logging, tracing, and metrics, and gives the supervisor and IPC layers a
// single place to obtain a tracer or meter without each package wiring its
// own exporter.
//
// # Core Features
//
//   - Default OpenTelemetry setup with SDK providers that have no
//     exporters when no OTLP endpoint is configured, so running tutti
//     standalone never requires a collector
//   - A single Provider combining the trace, metric, and log SDKs, built
//     from functional options
//   - Per-command tracing for Up and Down, and counters/gauges for
//     running services, restarts, and connected IPC clients
//
// # Basic Setup
//
// Initialize OpenTelemetry with default configuration before starting the
// supervisor:
//
//	func main() {
//		telemetry.DefaultSetup()
//
//		logger := log.GetGlobalLogger()
//		logger.Info("tuttid starting")
//
//		// construct the supervisor, IPC server, and listener here
//	}
//
// # Tracing a Supervisor Command
//
//	func (s *Supervisor) Up(ctx context.Context, project tuttiapi.Project, services []string) error {
//		tracer := telemetry.GetTracer("supervisor")
//		ctx, span := tracer.Start(ctx, "supervisor.Up")
//		defer span.End()
//
//		span.SetAttributes(
//			attribute.String("project.id", project.ID.String()),
//			attribute.Int("services.requested", len(services)),
//		)
//
//		// ... dispatch the Up command ...
//	}
//
// # Recording Supervisor Metrics
//
//	func recordRestart(ctx context.Context, projectID, service string) {
//		meter := telemetry.GetMeter("supervisor")
//		counter, _ := meter.Int64Counter("tutti.service.restarts")
//		counter.Add(ctx, 1, metric.WithAttributes(
//			attribute.String("project.id", projectID),
//			attribute.String("service", service),
//		))
//	}
//
// # Configuration for Different Environments
//
//	func setupTelemetry(otlpEndpoint string) {
//		if otlpEndpoint == "" {
//			telemetry.DefaultSetup()
//			return
//		}
//
//		shutdown, err := telemetry.Setup(context.Background(),
//			telemetry.WithServiceName("tuttid"),
//			telemetry.WithGRPCEndpoint(otlpEndpoint),
//		)
//		if err != nil {
//			log.Fatalf("telemetry setup: %v", err)
//		}
//		defer shutdown(context.Background())
//	}
//
// # Best Practices
//
//   - Initialize telemetry before constructing the supervisor: constructing
//     it first triggers DefaultSetup, after which Setup returns
//     ErrAlreadyInitialized
//   - Use span names of the form "<package>.<method>" so traces read the
//     same way across the supervisor and IPC layers
//   - Record the project id and service name as attributes rather than in
//     the span name, so spans for the same operation group together
//   - Call the shutdown function returned by Setup during daemon teardown
//     so buffered spans and metrics flush before exit
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use; the
// underlying OpenTelemetry SDK handles concurrent access to tracers,
// meters, and propagators.
//
// # Resource Usage
//
// With no OTLP endpoint configured, the SDK providers are built without
// exporters: spans and metrics are still recorded but sent nowhere. Once an
// endpoint is configured, exporter batch sizes and sampling are the primary
// levers for overhead.
package telemetry
