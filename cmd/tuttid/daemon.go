// SPDX-License-Identifier: BSD-3-Clause

//go:build unix

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"cirello.io/oversight/v2"
	"github.com/arunsworld/nursery"

	"github.com/ya7on/tutti/pkg/id"
	"github.com/ya7on/tutti/pkg/ipcserver"
	"github.com/ya7on/tutti/pkg/log"
	"github.com/ya7on/tutti/pkg/process"
	"github.com/ya7on/tutti/pkg/supervisor"
	"github.com/ya7on/tutti/pkg/telemetry"
)

// socketName is the listener's filename within the system directory.
const socketName = "tutti.sock"

// childShutdownGrace bounds how long a supervised goroutine is given to
// return once its context is canceled, mirroring the kill-timeout grace
// period the process layer underneath it applies to children.
const childShutdownGrace = 5 * time.Second

// run wires the supervisor core, the IPC server, and their background
// loops into a single oversight supervision tree, binds the Unix socket
// under systemDir, and blocks until ctx is canceled or the supervisor
// drains following a Shutdown command.
func run(ctx context.Context, systemDir string, killTimeout time.Duration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}
	}()

	telemetry.DefaultSetup()
	logger := log.GetGlobalLogger()

	if err := os.MkdirAll(systemDir, 0o700); err != nil {
		return fmt.Errorf("%w: %w", ErrSystemDirUnavailable, err)
	}

	instanceID, err := id.GetOrCreatePersistentID("id", systemDir)
	if err != nil {
		logger.WarnContext(ctx, "failed to persist instance id, continuing with an ephemeral one", "error", err)
		instanceID = id.NewID()
	}
	logger = logger.With("instance_id", instanceID)

	socketPath := filepath.Join(systemDir, socketName)
	if err := os.Remove(socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrStaleSocket, err)
	}

	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrListenFailed, err)
	}
	defer ln.Close()

	supervisorOpts := []supervisor.Option{supervisor.WithLogger(logger)}
	if killTimeout > 0 {
		supervisorOpts = append(supervisorOpts, supervisor.WithKillTimeout(killTimeout))
	}

	mgr := process.NewManager()
	sup := supervisor.New(mgr, supervisorOpts...)

	srv, err := ipcserver.NewServer(sup.Handler(), ipcserver.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrServerInit, err)
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	tree := oversight.New(
		oversight.NeverHalt(),
		oversight.DefaultRestartStrategy(),
		oversight.WithLogger(log.NewOversightLogger(logger)),
	)

	children := []struct {
		name  string
		child oversight.ChildProcess
	}{
		{"supervisor-core", supervisorCoreChild(sup, cancelRun)},
		{"event-forwarder", eventForwarderChild(srv, sup)},
		{"ipc-server", ipcAcceptChild(srv, ln)},
	}

	for _, c := range children {
		if err := tree.Add(c.child, oversight.Transient(), oversight.Timeout(childShutdownGrace), c.name); err != nil {
			return fmt.Errorf("%w %s: %w", ErrAddChild, c.name, err)
		}
	}

	supervise := func(ctx context.Context, c chan error) {
		c <- tree.Start(runCtx)
	}

	// The daemon removes systemDir entirely on a clean exit, not just the
	// socket file, since the directory holds no state worth surviving past
	// the process that owns it.
	cleanupSocket := func(ctx context.Context, c chan error) {
		<-runCtx.Done()
		if err := os.RemoveAll(systemDir); err != nil {
			logger.WarnContext(ctx, "failed to remove system directory on shutdown", "path", systemDir, "error", err)
		}
		c <- nil
	}

	logger.InfoContext(ctx, "tuttid ready", "socket", socketPath, "system_directory", systemDir)

	return nursery.RunConcurrentlyWithContext(ctx, supervise, cleanupSocket)
}

// ignoreShutdown swallows an error that only reflects ctx already being
// canceled, so a clean shutdown is not mistaken for a crash worth
// restarting under the Transient policy.
func ignoreShutdown(ctx context.Context, err error) error {
	if err != nil && ctx.Err() != nil {
		return nil
	}

	return err
}

func supervisorCoreChild(sup *supervisor.Supervisor, done func()) oversight.ChildProcess {
	return func(ctx context.Context) (err error) {
		defer done()
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("supervisor core panicked: %v", r)
			}
		}()

		return ignoreShutdown(ctx, sup.Run(ctx))
	}
}

func eventForwarderChild(srv *ipcserver.Server, sup *supervisor.Supervisor) oversight.ChildProcess {
	return func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("event forwarder panicked: %v", r)
			}
		}()

		srv.ForwardEvents(ctx, sup.Events())

		return nil
	}
}

func ipcAcceptChild(srv *ipcserver.Server, ln net.Listener) oversight.ChildProcess {
	return func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("ipc server panicked: %v", r)
			}
		}()

		return ignoreShutdown(ctx, srv.Serve(ctx, ln))
	}
}
