// SPDX-License-Identifier: BSD-3-Clause

//go:build unix

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ya7on/tutti/pkg/ipcclient"
)

const (
	socketName         = "tutti.sock"
	daemonSpawnPoll    = 50 * time.Millisecond
	daemonSpawnTimeout = 5 * time.Second
)

func socketPath(systemDir string) string {
	return filepath.Join(systemDir, socketName)
}

func envForDaemon() []string {
	return os.Environ()
}

// dialOrSpawn connects to systemDir's socket, spawning a detached tuttid
// if nothing answers yet, so `tutti run` works without a manually started
// daemon.
func dialOrSpawn(ctx context.Context, systemDir string, killTimeout time.Duration) (*ipcclient.Client, error) {
	addr := socketPath(systemDir)

	if client, err := ipcclient.Dial("unix", addr); err == nil {
		return client, nil
	}

	if err := spawnDetachedDaemon(systemDir, killTimeout); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDaemonUnreachable, err)
	}

	deadline := time.Now().Add(daemonSpawnTimeout)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(daemonSpawnPoll):
		}

		if client, err := ipcclient.Dial("unix", addr); err == nil {
			return client, nil
		}
	}

	return nil, ErrDaemonUnreachable
}

// spawnDetachedDaemon starts tuttid in its own session so it outlives the
// CLI process, redirecting its stdio to a log file under systemDir since
// nothing will be attached to read it.
func spawnDetachedDaemon(systemDir string, killTimeout time.Duration) error {
	bin, err := findDaemonBinary()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(systemDir, 0o700); err != nil {
		return fmt.Errorf("tutti: create system directory: %w", err)
	}

	logFile, err := os.OpenFile(filepath.Join(systemDir, "daemon.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("tutti: open daemon log: %w", err)
	}
	defer logFile.Close()

	argv := []string{"-system-directory", systemDir}
	if killTimeout > 0 {
		argv = append(argv, "-kill-timeout", killTimeout.String())
	}

	cmd := exec.Command(bin, argv...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("tutti: spawn daemon: %w", err)
	}

	return cmd.Process.Release()
}
