// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/ya7on/tutti/pkg/tuttiapi"
)

// captureStdout runs fn with os.Stdout redirected to an in-memory pipe and
// returns whatever it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read captured stdout: %v", err)
	}

	return string(out)
}

func TestPrintEventLogIsNotTerminal(t *testing.T) {
	var outcome sessionOutcome
	out := captureStdout(t, func() {
		outcome = printEvent(&tuttiapi.Log{Service: "web", Message: "listening\n"})
	})

	if outcome.done {
		t.Fatalf("Log event should not end the session, got %+v", outcome)
	}
	if !bytes.Contains([]byte(out), []byte("[web] listening")) {
		t.Fatalf("output %q missing expected service tag and message", out)
	}
}

func TestPrintEventServiceStoppedAndRestarted(t *testing.T) {
	cases := []struct {
		name string
		evt  tuttiapi.TuttiApi
		want string
	}{
		{"stopped", &tuttiapi.ServiceStopped{Service: "web"}, `[system] service "web" stopped`},
		{"restarted", &tuttiapi.ServiceRestarted{Service: "web"}, `[system] service "web" restarted`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var outcome sessionOutcome
			out := captureStdout(t, func() {
				outcome = printEvent(tc.evt)
			})

			if outcome.done {
				t.Fatalf("%s event should not end the session, got %+v", tc.name, outcome)
			}
			if !bytes.Contains([]byte(out), []byte(tc.want)) {
				t.Fatalf("output %q missing %q", out, tc.want)
			}
		})
	}
}

func TestPrintEventProjectStoppedEndsSessionSuccessfully(t *testing.T) {
	var outcome sessionOutcome
	captureStdout(t, func() {
		outcome = printEvent(&tuttiapi.ProjectStopped{})
	})

	if !outcome.done || !outcome.ok {
		t.Fatalf("ProjectStopped should end the session successfully, got %+v", outcome)
	}
}

// TestEventProjectIDScopesSession verifies the run loop can tell another
// project's events apart from its own: the daemon broadcasts every Stream
// frame to every client, so a session must drop frames whose project id
// differs from the one it started.
func TestEventProjectIDScopesSession(t *testing.T) {
	mine, err := tuttiapi.NewProjectID("/tmp/mine.toml")
	if err != nil {
		t.Fatalf("NewProjectID: %v", err)
	}
	other, err := tuttiapi.NewProjectID("/tmp/other.toml")
	if err != nil {
		t.Fatalf("NewProjectID: %v", err)
	}

	cases := []struct {
		name string
		evt  tuttiapi.TuttiApi
		want tuttiapi.ProjectID
	}{
		{"log", &tuttiapi.Log{ProjectID: other, Service: "web", Message: "noise\n"}, other},
		{"service-stopped", &tuttiapi.ServiceStopped{ProjectID: other, Service: "web"}, other},
		{"service-restarted", &tuttiapi.ServiceRestarted{ProjectID: mine, Service: "web"}, mine},
		{"project-stopped", &tuttiapi.ProjectStopped{ProjectID: other}, other},
		{"error", &tuttiapi.Error{ProjectID: other, Message: "boom"}, other},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := eventProjectID(tc.evt)
			if !ok {
				t.Fatalf("eventProjectID(%T) = not an event, want %v", tc.evt, tc.want)
			}
			if got != tc.want {
				t.Fatalf("eventProjectID(%T) = %v, want %v", tc.evt, got, tc.want)
			}
		})
	}

	if _, ok := eventProjectID(&tuttiapi.Pong{}); ok {
		t.Fatal("eventProjectID(Pong) should report no project")
	}
}

func TestPrintEventErrorEndsSessionUnsuccessfully(t *testing.T) {
	var outcome sessionOutcome
	out := captureStdout(t, func() {
		outcome = printEvent(&tuttiapi.Error{Message: "boom"})
	})

	if !outcome.done || outcome.ok {
		t.Fatalf("Error should end the session unsuccessfully, got %+v", outcome)
	}
	if !bytes.Contains([]byte(out), []byte("boom")) {
		t.Fatalf("output %q missing error message", out)
	}
}
