// SPDX-License-Identifier: BSD-3-Clause

package supervisor

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ya7on/tutti/pkg/telemetry"
	"github.com/ya7on/tutti/pkg/tuttiapi"
)

const instrumentationName = "tutti.supervisor"

// instruments holds the tracer and meter instruments a Supervisor emits for
// every Up/Down command and service lifecycle transition. Construction
// failures are logged, not fatal: a Supervisor runs identically with noop
// instruments if telemetry is unavailable.
type instruments struct {
	tracer          trace.Tracer
	runningServices metric.Int64UpDownCounter
	restarts        metric.Int64Counter
}

func newInstruments(logger interface {
	Warn(msg string, args ...any)
}) instruments {
	meter := telemetry.GetMeter(instrumentationName)

	runningServices, err := meter.Int64UpDownCounter("tutti.supervisor.running_services",
		metric.WithDescription("number of services currently running across all projects"),
		metric.WithUnit("{service}"),
	)
	if err != nil {
		logger.Warn("failed to create running_services instrument", "error", err)
	}

	restarts, err := meter.Int64Counter("tutti.supervisor.restarts",
		metric.WithDescription("services respawned after exiting under restart=always"),
		metric.WithUnit("{restart}"),
	)
	if err != nil {
		logger.Warn("failed to create restarts instrument", "error", err)
	}

	return instruments{
		tracer:          telemetry.GetTracer(instrumentationName),
		runningServices: runningServices,
		restarts:        restarts,
	}
}

// startCommandSpan opens a span for one Up or Down command, tagging it with
// the project it targets.
func (s *Supervisor) startCommandSpan(ctx context.Context, name string, pid tuttiapi.ProjectID) (context.Context, trace.Span) {
	return s.inst.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("tutti.project_id", pid.String()),
	))
}

func (s *Supervisor) recordServiceSpawned() {
	if s.inst.runningServices != nil {
		s.inst.runningServices.Add(context.Background(), 1)
	}
}

func (s *Supervisor) recordServiceStopped() {
	if s.inst.runningServices != nil {
		s.inst.runningServices.Add(context.Background(), -1)
	}
}

func (s *Supervisor) recordRestart(service string) {
	if s.inst.restarts != nil {
		s.inst.restarts.Add(context.Background(), 1, metric.WithAttributes(
			attribute.String("tutti.service", service),
		))
	}
}
