// SPDX-License-Identifier: BSD-3-Clause

//go:build unix

package main

import (
	"context"
	"fmt"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ya7on/tutti/pkg/ipcclient"
)

func newDaemonCmd() *cobra.Command {
	daemon := &cobra.Command{
		Use:   "daemon",
		Short: "Manage the tuttid daemon process",
	}

	daemon.AddCommand(newDaemonRunCmd(), newDaemonStopCmd())

	return daemon
}

func newDaemonRunCmd() *cobra.Command {
	var (
		systemDir   string
		killTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the daemon in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execDaemon(systemDir, killTimeout)
		},
	}

	cmd.Flags().StringVar(&systemDir, "system-directory", defaultSystemDir(), "directory holding the daemon's socket and instance id")
	cmd.Flags().DurationVar(&killTimeout, "kill-timeout", 0, "grace period between graceful signal and forced kill")

	return cmd
}

// execDaemon replaces the current process image with tuttid, so "tutti
// daemon run" behaves exactly like invoking tuttid directly: same pid,
// same signal delivery, same stdio.
func execDaemon(systemDir string, killTimeout time.Duration) error {
	bin, err := findDaemonBinary()
	if err != nil {
		return err
	}

	argv := []string{bin, "-system-directory", systemDir}
	if killTimeout > 0 {
		argv = append(argv, "-kill-timeout", killTimeout.String())
	}

	return syscall.Exec(bin, argv, envForDaemon())
}

func newDaemonStopCmd() *cobra.Command {
	var systemDir string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Ask a running daemon to shut down",
		RunE: func(cmd *cobra.Command, args []string) error {
			return stopDaemon(systemDir)
		},
	}

	cmd.Flags().StringVar(&systemDir, "system-directory", defaultSystemDir(), "directory holding the daemon's socket and instance id")

	return cmd
}

func stopDaemon(systemDir string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := ipcclient.Dial("unix", socketPath(systemDir))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDaemonUnreachable, err)
	}
	defer client.Close()

	return client.Shutdown(ctx)
}
