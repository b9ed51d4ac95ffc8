// SPDX-License-Identifier: BSD-3-Clause

package ipcserver

import (
	"context"

	"go.opentelemetry.io/otel/metric"

	"github.com/ya7on/tutti/pkg/telemetry"
)

const instrumentationName = "tutti.ipcserver"

func newConnectedClientsInstrument(logger interface {
	Warn(msg string, args ...any)
}) metric.Int64UpDownCounter {
	counter, err := telemetry.GetMeter(instrumentationName).Int64UpDownCounter("tutti.ipcserver.connected_clients",
		metric.WithDescription("number of IPC clients currently connected to the daemon"),
		metric.WithUnit("{client}"),
	)
	if err != nil {
		logger.Warn("failed to create connected_clients instrument", "error", err)
	}

	return counter
}

func (s *Server) recordClientConnected() {
	if s.connectedClients != nil {
		s.connectedClients.Add(context.Background(), 1)
	}
}

func (s *Server) recordClientDisconnected() {
	if s.connectedClients != nil {
		s.connectedClients.Add(context.Background(), -1)
	}
}
