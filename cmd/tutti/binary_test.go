// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFindDaemonBinaryNotFound(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("findDaemonBinary is built for unix")
	}

	t.Setenv("PATH", t.TempDir())

	_, err := findDaemonBinary()
	if !errors.Is(err, ErrDaemonBinaryNotFound) {
		t.Fatalf("got error %v, want ErrDaemonBinaryNotFound", err)
	}
}

func TestFindDaemonBinaryFallsBackToPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("findDaemonBinary is built for unix")
	}

	dir := t.TempDir()
	fake := filepath.Join(dir, "tuttid")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write fake tuttid: %v", err)
	}

	t.Setenv("PATH", dir)

	got, err := findDaemonBinary()
	if err != nil {
		t.Fatalf("findDaemonBinary: %v", err)
	}
	if got != fake {
		t.Fatalf("got %q, want %q", got, fake)
	}
}
