// SPDX-License-Identifier: BSD-3-Clause

//go:build unix

// Command tuttid is the tutti daemon. It starts with no project loaded,
// binds a Unix socket under its system directory, and waits for a client
// (typically the tutti CLI) to submit commands over the wire protocol
// described in pkg/tuttiapi and pkg/ipcframe.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ya7on/tutti/pkg/log"
)

func main() {
	systemDir := flag.String("system-directory", defaultSystemDir(), "directory holding the daemon's socket and instance id")
	killTimeout := flag.Duration("kill-timeout", 0, "grace period between graceful signal and forced kill (0 keeps the supervisor's built-in default)")
	flag.Parse()

	logger := log.GetGlobalLogger()
	log.RedirectStdLog(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *systemDir, *killTimeout); err != nil {
		logger.Error("tuttid exited with an error", "error", err)
		os.Exit(1)
	}
}

func defaultSystemDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".tutti")
	}

	return ".tutti"
}
