// SPDX-License-Identifier: BSD-3-Clause

package supervisor

import (
	"context"
	"testing"
	"time"

	"github.com/ya7on/tutti/pkg/process"
	"github.com/ya7on/tutti/pkg/tuttiapi"
)

func mustProjectID(t *testing.T, path string) tuttiapi.ProjectID {
	t.Helper()
	id, err := tuttiapi.NewProjectID(path)
	if err != nil {
		t.Fatalf("NewProjectID: %v", err)
	}
	return id
}

// TestUpSpawnOrderIsTopological covers S2: services A{deps:[B,C]},
// B{deps:[]}, C{deps:[D,E]}, D{deps:[F]}, E{deps:[]}, F{deps:[]}; Up([A])
// must spawn in order B, E, F, D, C, A.
func TestUpSpawnOrderIsTopological(t *testing.T) {
	mgr := process.NewMockManager()
	sup := New(mgr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sup.Run(ctx)
	go drain(ctx, sup.Events())

	pid := mustProjectID(t, "/tmp/s2.toml")
	project := tuttiapi.Project{
		Version: 1,
		ID:      pid,
		Services: map[string]tuttiapi.Service{
			"a": {Cmd: []string{"echo"}, Deps: []string{"b", "c"}},
			"b": {Cmd: []string{"echo"}},
			"c": {Cmd: []string{"echo"}, Deps: []string{"d", "e"}},
			"d": {Cmd: []string{"echo"}, Deps: []string{"f"}},
			"e": {Cmd: []string{"echo"}},
			"f": {Cmd: []string{"echo"}},
		},
	}

	if err := sup.Up(ctx, project, []string{"a"}); err != nil {
		t.Fatalf("Up: %v", err)
	}

	got := make([]string, 0, len(mgr.Spawns))
	for _, spec := range mgr.Spawns {
		got = append(got, spec.Name)
	}
	want := []string{"b", "e", "f", "d", "c", "a"}
	if !equalSlices(got, want) {
		t.Fatalf("spawn order = %v, want %v", got, want)
	}
}

// TestUpRejectsCycle covers S3: X{deps:[Y]}, Y{deps:[X]} must be rejected
// with no process spawned.
func TestUpRejectsCycle(t *testing.T) {
	mgr := process.NewMockManager()
	sup := New(mgr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sup.Run(ctx)

	events := sup.Events()
	errCh := make(chan *tuttiapi.Error, 1)
	go func() {
		for evt := range events {
			if e, ok := evt.(*tuttiapi.Error); ok {
				select {
				case errCh <- e:
				default:
				}
			}
		}
	}()

	pid := mustProjectID(t, "/tmp/s3.toml")
	project := tuttiapi.Project{
		Version: 1,
		ID:      pid,
		Services: map[string]tuttiapi.Service{
			"x": {Cmd: []string{"echo"}, Deps: []string{"y"}},
			"y": {Cmd: []string{"echo"}, Deps: []string{"x"}},
		},
	}

	if err := sup.Up(ctx, project, []string{"x"}); err == nil {
		t.Fatal("expected Up to reject a cyclic project")
	}

	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Error event")
	}

	if len(mgr.Spawns) != 0 {
		t.Fatalf("got %d spawns, want 0", len(mgr.Spawns))
	}
}

// TestUpOfAlreadyRunningIsNoop covers the round-trip property: a second Up
// of the same requested set does not double-spawn.
func TestUpOfAlreadyRunningIsNoop(t *testing.T) {
	mgr := process.NewMockManager()
	sup := New(mgr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sup.Run(ctx)
	go drain(ctx, sup.Events())

	pid := mustProjectID(t, "/tmp/noop.toml")
	project := tuttiapi.Project{
		Version:  1,
		ID:       pid,
		Services: map[string]tuttiapi.Service{"s1": {Cmd: []string{"echo"}}},
	}

	if err := sup.Up(ctx, project, []string{"s1"}); err != nil {
		t.Fatalf("first Up: %v", err)
	}
	if err := sup.Up(ctx, project, []string{"s1"}); err != nil {
		t.Fatalf("second Up: %v", err)
	}

	if len(mgr.Spawns) != 1 {
		t.Fatalf("got %d spawns, want 1", len(mgr.Spawns))
	}
}

// TestDownOfUnknownProjectIsNoop covers the round-trip property: Down of an
// unrecognized project id does not error.
func TestDownOfUnknownProjectIsNoop(t *testing.T) {
	mgr := process.NewMockManager()
	sup := New(mgr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sup.Run(ctx)
	go drain(ctx, sup.Events())

	pid := mustProjectID(t, "/tmp/unknown.toml")
	if err := sup.Down(ctx, pid); err != nil {
		t.Fatalf("Down: %v", err)
	}
}

// TestNaturalExitEmitsProjectStopped covers the tail of S1: when a
// project's only service exits on its own (no Down issued), the supervisor
// announces ServiceStopped followed by ProjectStopped.
func TestNaturalExitEmitsProjectStopped(t *testing.T) {
	mgr := process.NewMockManager()
	sup := New(mgr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sup.Run(ctx)

	serviceStopped := make(chan struct{}, 1)
	projectStopped := make(chan struct{}, 1)
	go func() {
		for evt := range sup.Events() {
			switch evt.(type) {
			case *tuttiapi.ServiceStopped:
				select {
				case serviceStopped <- struct{}{}:
				default:
				}
			case *tuttiapi.ProjectStopped:
				select {
				case projectStopped <- struct{}{}:
				default:
				}
			}
		}
	}()

	pid := mustProjectID(t, "/tmp/s1.toml")
	project := tuttiapi.Project{
		Version:  1,
		ID:       pid,
		Services: map[string]tuttiapi.Service{"s1": {Cmd: []string{"echo"}}},
	}

	if err := sup.Up(ctx, project, []string{"s1"}); err != nil {
		t.Fatalf("Up: %v", err)
	}

	select {
	case <-serviceStopped:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ServiceStopped")
	}
	select {
	case <-projectStopped:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ProjectStopped")
	}
}

// TestShutdownDrainsAndReturns exercises Shutdown with no running services,
// which should complete immediately and let Run return.
func TestShutdownDrainsAndReturns(t *testing.T) {
	mgr := process.NewMockManager()
	sup := New(mgr)

	ctx := context.Background()
	runDone := make(chan error, 1)
	go func() { runDone <- sup.Run(ctx) }()
	go drain(ctx, sup.Events())

	if err := sup.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	select {
	case err := <-runDone:
		if err != nil {
			t.Fatalf("Run returned %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Run to return after Shutdown")
	}
}

func drain(ctx context.Context, events <-chan tuttiapi.TuttiApi) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
		}
	}
}

func equalSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
