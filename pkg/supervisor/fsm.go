// SPDX-License-Identifier: BSD-3-Clause

package supervisor

import "github.com/qmuntal/stateless"

// status is a running service's lifecycle state. It drives a
// stateless.StateMachine per record; since every record is only ever
// touched from the supervisor's single loop goroutine, the machine needs no
// locking of its own.
type status int

const (
	statusWaiting status = iota
	statusStarting
	statusRunning
	statusStopped
)

func (s status) String() string {
	switch s {
	case statusWaiting:
		return "waiting"
	case statusStarting:
		return "starting"
	case statusRunning:
		return "running"
	case statusStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

type trigger string

const (
	triggerDepsReady   trigger = "deps-ready"
	triggerHealthCheck trigger = "healthcheck-ok"
	triggerExited      trigger = "exited"
	triggerRespawn     trigger = "respawn"
)

// newMachine builds the per-service FSM: Waiting spawns into
// Starting once every dependency is Running; Starting becomes Running on
// healthcheck success or Stopped if the process exits before that; Running
// becomes Stopped on exit; Stopped is terminal unless the service restarts,
// in which case it re-enters Starting.
func newMachine(initial status) *stateless.StateMachine {
	sm := stateless.NewStateMachine(initial)

	sm.Configure(statusWaiting).
		Permit(triggerDepsReady, statusStarting)

	sm.Configure(statusStarting).
		Permit(triggerHealthCheck, statusRunning).
		Permit(triggerExited, statusStopped)

	sm.Configure(statusRunning).
		Permit(triggerExited, statusStopped)

	sm.Configure(statusStopped).
		Permit(triggerRespawn, statusStarting)

	return sm
}
