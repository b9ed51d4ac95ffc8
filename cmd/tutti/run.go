// SPDX-License-Identifier: BSD-3-Clause

//go:build unix

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ya7on/tutti/pkg/config"
	"github.com/ya7on/tutti/pkg/ipcclient"
	"github.com/ya7on/tutti/pkg/tuttiapi"
)

func newRunCmd() *cobra.Command {
	var (
		file        string
		systemDir   string
		killTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run [services...]",
		Short: "Start a project's services, auto-spawning the daemon if needed, and stream their logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(cmd.Context(), file, systemDir, killTimeout, args)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "tutti.toml", "project configuration file")
	cmd.Flags().StringVar(&systemDir, "system-directory", defaultSystemDir(), "directory holding the daemon's socket and instance id")
	cmd.Flags().DurationVar(&killTimeout, "kill-timeout", 0, "grace period between graceful signal and forced kill, applied if this run auto-spawns the daemon")

	return cmd
}

func runProject(parent context.Context, file, systemDir string, killTimeout time.Duration, services []string) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	project, err := config.LoadFromPath(file)
	if err != nil {
		return fmt.Errorf("tutti: load project: %w", err)
	}

	if len(services) == 0 {
		services = project.SortedServiceNames()
	}

	client, err := dialOrSpawn(ctx, systemDir, killTimeout)
	if err != nil {
		return err
	}
	defer client.Close()

	// Subscribe before Up: there is no ordering guarantee between early
	// events and a late Subscribe, so registering first is the only way to
	// see every event the Up triggers.
	events := client.Subscribe()

	if err := client.Up(ctx, project, services); err != nil {
		return fmt.Errorf("%w: %w", ErrProjectRejected, err)
	}

	return streamUntilDone(ctx, stop, client, project.ID, events)
}

// streamUntilDone renders forwarded events until the project reports
// ProjectStopped (success), an Error event arrives (failure), or the
// caller's context is canceled by a first interrupt, in which case a Down
// is requested and streaming continues until the resulting ProjectStopped
// arrives. stop unregisters the signal handler on that first interrupt, so
// a second interrupt terminates the process immediately via the signal's
// default disposition.
func streamUntilDone(ctx context.Context, stop context.CancelFunc, client *ipcclient.Client, projectID tuttiapi.ProjectID, events <-chan tuttiapi.TuttiApi) error {
	done := ctx.Done()

	for {
		select {
		case <-done:
			done = nil
			stop()

			go func() {
				downCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = client.Down(downCtx, projectID)
			}()
		case evt, ok := <-events:
			if !ok {
				return nil
			}

			// The daemon fans every project's events out to every
			// client; only render the ones for this session's project.
			pid, ok := eventProjectID(evt)
			if !ok || pid != projectID {
				continue
			}

			outcome := printEvent(evt)
			if outcome.done {
				if outcome.ok {
					return nil
				}

				return ErrProjectRejected
			}
		}
	}
}
