// SPDX-License-Identifier: BSD-3-Clause

// Command tutti is the client-side CLI: it starts a project
// against a tuttid daemon (auto-spawning one if none is reachable),
// streams its logs, and can tell a running daemon to stop.
package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ya7on/tutti/pkg/log"
)

func defaultSystemDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".tutti")
	}

	return ".tutti"
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tutti",
		Short:         "Run and supervise a project's services",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(), newDaemonCmd())

	return root
}

func main() {
	logger := log.GetGlobalLogger()
	log.RedirectStdLog(logger)

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.Error("tutti failed", "error", err)
		os.Exit(1)
	}
}
