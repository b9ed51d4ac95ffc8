// SPDX-License-Identifier: BSD-3-Clause

package supervisor

import (
	"context"

	"github.com/qmuntal/stateless"

	"github.com/ya7on/tutti/pkg/process"
	"github.com/ya7on/tutti/pkg/tuttiapi"
)

// serviceKey identifies a RunningService record.
type serviceKey struct {
	projectID tuttiapi.ProjectID
	name      string
}

// record is the supervisor's own bookkeeping for one running service. The
// embedded FSM enforces the legal lifecycle transitions; waitFor is only
// meaningful while status is statusWaiting.
type record struct {
	key     serviceKey
	spec    tuttiapi.Service
	fsm     *stateless.StateMachine
	waitFor map[string]bool
	procID  process.ProcID
	hasProc bool
}

func (r *record) status() status {
	st, _ := r.fsm.State(context.Background())
	return st.(status)
}

func (r *record) fire(ctx context.Context, t trigger) error {
	return r.fsm.FireCtx(ctx, t)
}

// command is the sealed set of messages the supervisor loop accepts.
type command interface {
	isCommand()
}

type cmdUp struct {
	project  tuttiapi.Project
	services []string
	result   chan error
}

func (cmdUp) isCommand() {}

type cmdDown struct {
	projectID tuttiapi.ProjectID
	result    chan error
}

func (cmdDown) isCommand() {}

type cmdEndOfLogs struct {
	key serviceKey
}

func (cmdEndOfLogs) isCommand() {}

type cmdHealthCheckSuccess struct {
	key serviceKey
}

func (cmdHealthCheckSuccess) isCommand() {}

type cmdShutdown struct {
	result chan error
}

func (cmdShutdown) isCommand() {}

// sendResult delivers err on result if the caller is still listening,
// respecting ctx so a caller that gave up does not leak the goroutine.
func sendResult(ctx context.Context, result chan<- error, err error) {
	select {
	case result <- err:
	case <-ctx.Done():
	}
}
