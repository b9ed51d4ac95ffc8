// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"

	"github.com/ya7on/tutti/pkg/tuttiapi"
)

// sessionOutcome is returned by printEvent to tell the run loop whether the
// event ends the CLI session and, if so, whether that's a success.
type sessionOutcome struct {
	done bool
	ok   bool
}

// eventProjectID extracts the project an event belongs to. The daemon
// broadcasts every Stream frame to every connected client, so the run loop
// uses this to keep a session scoped to the project it started.
func eventProjectID(evt tuttiapi.TuttiApi) (tuttiapi.ProjectID, bool) {
	switch e := evt.(type) {
	case *tuttiapi.Log:
		return e.ProjectID, true
	case *tuttiapi.ServiceStopped:
		return e.ProjectID, true
	case *tuttiapi.ServiceRestarted:
		return e.ProjectID, true
	case *tuttiapi.ProjectStopped:
		return e.ProjectID, true
	case *tuttiapi.Error:
		return e.ProjectID, true
	default:
		return tuttiapi.ProjectID{}, false
	}
}

// printEvent renders one forwarded TuttiApi event: "[service]" for log
// chunks, "[system]" for stop/restart announcements and the final project
// summary, and a terminating message for Error.
func printEvent(evt tuttiapi.TuttiApi) sessionOutcome {
	switch e := evt.(type) {
	case *tuttiapi.Log:
		fmt.Printf("[%s] %s", e.Service, e.Message)
	case *tuttiapi.ServiceStopped:
		fmt.Printf("[system] service %q stopped\n", e.Service)
	case *tuttiapi.ServiceRestarted:
		fmt.Printf("[system] service %q restarted\n", e.Service)
	case *tuttiapi.ProjectStopped:
		fmt.Println("[system] project stopped")
		return sessionOutcome{done: true, ok: true}
	case *tuttiapi.Error:
		fmt.Printf("[system] error: %s\n", e.Message)
		return sessionOutcome{done: true, ok: false}
	}

	return sessionOutcome{}
}
