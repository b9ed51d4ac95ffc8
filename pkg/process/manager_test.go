// SPDX-License-Identifier: BSD-3-Clause

//go:build unix

package process

import (
	"context"
	"testing"
	"time"
)

// TestSpawnStdout covers S1: a single service's stdout is delivered as
// byte chunks that concatenate back to what the child wrote.
func TestSpawnStdout(t *testing.T) {
	mgr := NewManager()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	spawned, err := mgr.Spawn(ctx, CommandSpec{
		Name: "echoer",
		Cmd:  []string{"printf", "INFO: line 1\nINFO: line 2\n"},
	})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	var got []byte
	for chunk := range spawned.Stdout {
		got = append(got, chunk...)
	}
	for range spawned.Stderr {
	}

	want := "INFO: line 1\nINFO: line 2\n"
	if string(got) != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}

	if _, _, err := mgr.Wait(spawned.ID, time.Second); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

// TestGracefulThenForcedKill covers S4: a child that ignores SIGTERM is
// reaped only after Kill escalates to SIGKILL.
func TestGracefulThenForcedKill(t *testing.T) {
	mgr := NewManager()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	spawned, err := mgr.Spawn(ctx, CommandSpec{
		Name: "stubborn",
		Cmd:  []string{"sh", "-c", "trap '' TERM; sleep 5"},
	})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	if err := mgr.Shutdown(spawned.ID); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if _, reaped, err := mgr.Wait(spawned.ID, 100*time.Millisecond); err != nil || reaped {
		t.Fatalf("Wait after graceful signal: reaped=%v err=%v, want reaped=false", reaped, err)
	}

	if err := mgr.Kill(spawned.ID); err != nil {
		t.Fatalf("Kill: %v", err)
	}

	code, reaped, err := mgr.Wait(spawned.ID, time.Second)
	if err != nil {
		t.Fatalf("Wait after kill: %v", err)
	}
	if !reaped {
		t.Fatalf("Wait after kill: not reaped")
	}
	if code != 0 {
		t.Fatalf("Wait after kill: exit code = %d, want 0 for signal-terminated child", code)
	}

	if _, _, err := mgr.Wait(spawned.ID, time.Millisecond); err == nil {
		t.Fatalf("Wait on reaped id: want ErrAlreadyReaped, got nil")
	}
}

func TestWaitUnknownID(t *testing.T) {
	mgr := NewManager()
	if _, _, err := mgr.Wait(ProcID(999), time.Millisecond); err == nil {
		t.Fatal("want error for unknown proc id")
	}
}

func TestSpawnEmptyCmd(t *testing.T) {
	mgr := NewManager()
	if _, err := mgr.Spawn(context.Background(), CommandSpec{Name: "bad"}); err == nil {
		t.Fatal("want error for empty cmd")
	}
}
