// SPDX-License-Identifier: BSD-3-Clause

package supervisor

import (
	"context"
	"fmt"

	"github.com/ya7on/tutti/pkg/process"
	"github.com/ya7on/tutti/pkg/telemetry"
	"github.com/ya7on/tutti/pkg/tuttiapi"
)

// Supervisor is the single-owner process orchestrator. Its façade methods
// (Up, Down, Shutdown) only translate calls into commands; Run's goroutine
// is the sole owner of every service record, so no other locking exists.
type Supervisor struct {
	mgr  process.Manager
	cfg  *config
	cmds chan command

	events chan tuttiapi.TuttiApi

	projects     map[tuttiapi.ProjectID]tuttiapi.Project
	running      map[serviceKey]*record
	tearingDown  map[tuttiapi.ProjectID]bool
	shuttingDown bool

	inst instruments
}

// New constructs a Supervisor driving processes through mgr. Call Run to
// start its loop.
func New(mgr process.Manager, opts ...Option) *Supervisor {
	cfg := newConfig(opts)

	return &Supervisor{
		mgr:         mgr,
		cfg:         cfg,
		cmds:        make(chan command, cfg.commandQueueSize),
		events:      make(chan tuttiapi.TuttiApi, cfg.eventQueueSize),
		projects:    make(map[tuttiapi.ProjectID]tuttiapi.Project),
		running:     make(map[serviceKey]*record),
		tearingDown: make(map[tuttiapi.ProjectID]bool),
		inst:        newInstruments(cfg.logger),
	}
}

// Events returns the channel of emitted TuttiApi events (Log,
// ServiceStopped, ServiceRestarted, ProjectStopped, Error). It is closed
// once Run returns.
func (s *Supervisor) Events() <-chan tuttiapi.TuttiApi {
	return s.events
}

// Run processes commands until ctx is done or a Shutdown command has fully
// drained every project. It is meant to run as its own goroutine for the
// supervisor's lifetime.
func (s *Supervisor) Run(ctx context.Context) error {
	defer close(s.events)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd, ok := <-s.cmds:
			if !ok {
				return nil
			}

			s.handle(ctx, cmd)

			if s.shuttingDown && len(s.running) == 0 {
				return nil
			}
		}
	}
}

func (s *Supervisor) emit(ctx context.Context, evt tuttiapi.TuttiApi) {
	select {
	case s.events <- evt:
	case <-ctx.Done():
	}
}

func (s *Supervisor) emitError(ctx context.Context, pid tuttiapi.ProjectID, err error) {
	s.emit(ctx, &tuttiapi.Error{ProjectID: pid, Message: err.Error()})
}

func (s *Supervisor) handle(ctx context.Context, cmd command) {
	switch c := cmd.(type) {
	case cmdUp:
		s.handleUp(ctx, c)
	case cmdDown:
		s.handleDown(ctx, c)
	case cmdEndOfLogs:
		s.handleEndOfLogs(ctx, c.key)
	case cmdHealthCheckSuccess:
		s.handleHealthCheckSuccess(ctx, c.key)
	case cmdShutdown:
		s.handleShutdown(ctx, c)
	}
}

// Up requests that services (and transitively their dependencies) be
// started for project, replacing its stored configuration snapshot first.
// It blocks until the request has been accepted or rejected; rejection
// (unknown service, cyclic dependency) does not change supervisor state.
func (s *Supervisor) Up(ctx context.Context, project tuttiapi.Project, services []string) error {
	result := make(chan error, 1)

	select {
	case s.cmds <- cmdUp{project: project, services: services, result: result}:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Down requests that every running service of projectID be torn down. It is
// a no-op if the project has no running services.
func (s *Supervisor) Down(ctx context.Context, projectID tuttiapi.ProjectID) error {
	result := make(chan error, 1)

	select {
	case s.cmds <- cmdDown{projectID: projectID, result: result}:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown requests that every project drain and that Run return once
// draining completes.
func (s *Supervisor) Shutdown(ctx context.Context) error {
	result := make(chan error, 1)

	select {
	case s.cmds <- cmdShutdown{result: result}:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NotifyHealthCheckSuccess reports that an external health probe for
// service within projectID has succeeded. It is the entry point a future
// real healthcheck prober would call; services declared without a
// healthcheck never need it since spawnProcess resolves their readiness
// inline.
func (s *Supervisor) NotifyHealthCheckSuccess(ctx context.Context, projectID tuttiapi.ProjectID, service string) error {
	select {
	case s.cmds <- cmdHealthCheckSuccess{key: serviceKey{projectID: projectID, name: service}}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Supervisor) handleUp(ctx context.Context, cmd cmdUp) {
	ctx, span := s.startCommandSpan(ctx, "supervisor.up", cmd.project.ID)
	defer span.End()

	if s.shuttingDown {
		telemetry.RecordError(ctx, ErrShuttingDown, "rejected: shutting down")
		sendResult(ctx, cmd.result, ErrShuttingDown)
		return
	}

	pid := cmd.project.ID
	project := cmd.project

	set, err := closure(project, cmd.services)
	if err != nil {
		telemetry.RecordError(ctx, err, "rejected: dependency closure")
		s.emitError(ctx, pid, err)
		sendResult(ctx, cmd.result, err)
		return
	}

	order, err := toposort(project, set)
	if err != nil {
		telemetry.RecordError(ctx, err, "rejected: topological sort")
		s.emitError(ctx, pid, err)
		sendResult(ctx, cmd.result, err)
		return
	}

	s.projects[pid] = project

	// Register every new record before spawning any of them. A
	// dependency-free service can become Running inline (no healthcheck)
	// during its own spawn, which cascades readiness into any dependent
	// already registered as Waiting, so every Waiting record the cascade
	// might need to find must exist first, regardless of where its
	// dependency falls in toposort order.
	toSpawn := make([]serviceKey, 0, len(order))
	for _, name := range order {
		key := serviceKey{projectID: pid, name: name}
		if _, exists := s.running[key]; exists {
			continue
		}

		svc := project.Services[name]
		if s.registerRecord(key, svc) {
			toSpawn = append(toSpawn, key)
		}
	}

	for _, key := range toSpawn {
		rec, ok := s.running[key]
		if !ok || rec.status() != statusStarting || rec.hasProc {
			continue
		}
		s.spawnProcess(ctx, rec)
	}

	sendResult(ctx, cmd.result, nil)
}

// registerRecord inserts the bookkeeping record for key without spawning
// it, returning true if it is immediately spawnable and false if it was
// registered Waiting. A dependency that is already Running (a join onto a
// previously started project) counts as satisfied up front; its
// healthcheck event fired long ago and will not fire again.
func (s *Supervisor) registerRecord(key serviceKey, svc tuttiapi.Service) bool {
	waitFor := make(map[string]bool, len(svc.Deps))
	for _, dep := range svc.Deps {
		if rec, ok := s.running[serviceKey{projectID: key.projectID, name: dep}]; ok && rec.status() == statusRunning {
			continue
		}
		waitFor[dep] = true
	}

	if len(waitFor) == 0 {
		s.running[key] = &record{key: key, spec: svc, fsm: newMachine(statusStarting)}
		return true
	}

	s.running[key] = &record{key: key, spec: svc, fsm: newMachine(statusWaiting), waitFor: waitFor}
	return false
}

func (s *Supervisor) spawnProcess(ctx context.Context, rec *record) {
	spawned, err := s.mgr.Spawn(ctx, process.CommandSpec{
		Name: rec.key.name,
		Cmd:  rec.spec.Cmd,
		Cwd:  rec.spec.Cwd,
		Env:  rec.spec.Env,
	})
	if err != nil {
		_ = rec.fire(ctx, triggerExited)
		s.emitError(ctx, rec.key.projectID, fmt.Errorf("%w: service %q: %w", ErrProcessSpawnFailed, rec.key.name, err))
		s.emit(ctx, &tuttiapi.ServiceStopped{ProjectID: rec.key.projectID, Service: rec.key.name})
		s.checkProjectDrained(ctx, rec.key.projectID)
		return
	}

	rec.hasProc = true
	rec.procID = spawned.ID
	s.recordServiceSpawned()

	go s.followStdout(ctx, rec.key, spawned.Stdout)
	go s.followStderr(ctx, rec.key, spawned.Stderr)

	// A service with no healthcheck declared is ready the instant it
	// spawns. This is applied inline rather than round-tripped
	// through a follower goroutine posting HealthCheckSuccess: both run
	// on the single supervisor loop either way, and resolving readiness
	// before the stdout follower goroutine gets a chance to run avoids a
	// race against a process that exits (and closes its pipes) before
	// the scheduler gets around to the follower goroutine.
	if rec.spec.Healthcheck == nil {
		s.handleHealthCheckSuccess(ctx, rec.key)
	}
}

func (s *Supervisor) followStdout(ctx context.Context, key serviceKey, stdout <-chan []byte) {
	for chunk := range stdout {
		s.emit(ctx, &tuttiapi.Log{ProjectID: key.projectID, Service: key.name, Message: string(chunk)})
	}

	select {
	case s.cmds <- cmdEndOfLogs{key: key}:
	case <-ctx.Done():
	}
}

// followStderr streams stderr chunks identically to stdout but, since
// stdout closure is already the canonical exit signal, does not also
// post a second EndOfLogs for the same process exit.
func (s *Supervisor) followStderr(ctx context.Context, key serviceKey, stderr <-chan []byte) {
	for chunk := range stderr {
		s.emit(ctx, &tuttiapi.Log{ProjectID: key.projectID, Service: key.name, Message: string(chunk)})
	}
}

func (s *Supervisor) handleHealthCheckSuccess(ctx context.Context, key serviceKey) {
	rec, ok := s.running[key]
	if !ok || rec.status() != statusStarting {
		return
	}

	if err := rec.fire(ctx, triggerHealthCheck); err != nil {
		return
	}

	for otherKey, other := range s.running {
		if otherKey.projectID != key.projectID || other.status() != statusWaiting {
			continue
		}

		delete(other.waitFor, key.name)
		if len(other.waitFor) == 0 {
			if err := other.fire(ctx, triggerDepsReady); err != nil {
				continue
			}
			s.spawnProcess(ctx, other)
		}
	}
}

func (s *Supervisor) handleEndOfLogs(ctx context.Context, key serviceKey) {
	rec, ok := s.running[key]
	if !ok || rec.status() == statusStopped {
		return
	}

	_ = rec.fire(ctx, triggerExited)
	rec.hasProc = false
	s.recordServiceStopped()
	s.emit(ctx, &tuttiapi.ServiceStopped{ProjectID: key.projectID, Service: key.name})

	tearing := s.shuttingDown || s.tearingDown[key.projectID]

	if !tearing && rec.spec.EffectiveRestart() == tuttiapi.RestartAlways {
		if err := rec.fire(ctx, triggerRespawn); err == nil {
			// Respawn against the latest stored snapshot, so an Up that
			// replaced the project's configuration takes effect on the
			// next restart.
			if project, ok := s.projects[key.projectID]; ok {
				if svc, ok := project.Services[key.name]; ok {
					rec.spec = svc
				}
			}
			s.spawnProcess(ctx, rec)
			s.recordRestart(key.name)
			s.emit(ctx, &tuttiapi.ServiceRestarted{ProjectID: key.projectID, Service: key.name})
		}
		return
	}

	if tearing {
		delete(s.running, key)
	}
	s.checkProjectDrained(ctx, key.projectID)
}

func (s *Supervisor) handleDown(ctx context.Context, cmd cmdDown) {
	ctx, span := s.startCommandSpan(ctx, "supervisor.down", cmd.projectID)
	defer span.End()

	s.teardownProject(ctx, cmd.projectID)
	sendResult(ctx, cmd.result, nil)
}

func (s *Supervisor) handleShutdown(ctx context.Context, cmd cmdShutdown) {
	s.shuttingDown = true

	pids := make(map[tuttiapi.ProjectID]bool)
	for key := range s.running {
		pids[key.projectID] = true
	}
	for pid := range pids {
		s.teardownProject(ctx, pid)
	}

	sendResult(ctx, cmd.result, nil)
}

// teardownProject removes every never-spawned or already-stopped record for
// pid immediately and issues a graceful shutdown (escalating to a forced
// kill after the configured grace period) for every still-active one.
func (s *Supervisor) teardownProject(ctx context.Context, pid tuttiapi.ProjectID) {
	any := false

	for key, rec := range s.running {
		if key.projectID != pid {
			continue
		}
		any = true

		switch rec.status() {
		case statusWaiting, statusStopped:
			delete(s.running, key)
		case statusStarting, statusRunning:
			if rec.hasProc {
				s.beginGracefulShutdown(rec.procID)
			}
		}
	}

	if !any {
		return
	}

	s.tearingDown[pid] = true
	s.checkProjectDrained(ctx, pid)
}

func (s *Supervisor) beginGracefulShutdown(procID process.ProcID) {
	mgr := s.mgr
	timeout := s.cfg.killTimeout
	logger := s.cfg.logger

	go func() {
		if err := mgr.Shutdown(procID); err != nil {
			logger.Warn("graceful shutdown failed", "proc_id", procID, "error", err)
		}

		_, ok, err := mgr.Wait(procID, timeout)
		if err != nil {
			return
		}
		if !ok {
			if killErr := mgr.Kill(procID); killErr != nil {
				logger.Warn("forced kill failed", "proc_id", procID, "error", killErr)
			}
		}
	}()
}

// checkProjectDrained emits ProjectStopped once pid has no service left
// outside Stopped. During teardown records are removed from storage as they
// drain, so the project is done when none remain; outside teardown a
// project whose every service exited on its own is reported the same way,
// with the Stopped records kept so a later Up does not double-spawn them.
func (s *Supervisor) checkProjectDrained(ctx context.Context, pid tuttiapi.ProjectID) {
	if s.tearingDown[pid] {
		for key := range s.running {
			if key.projectID == pid {
				return
			}
		}

		delete(s.tearingDown, pid)
		delete(s.projects, pid)
		s.emit(ctx, &tuttiapi.ProjectStopped{ProjectID: pid})
		return
	}

	seen := false
	for key, rec := range s.running {
		if key.projectID != pid {
			continue
		}
		seen = true
		if rec.status() != statusStopped {
			return
		}
	}

	if seen {
		s.emit(ctx, &tuttiapi.ProjectStopped{ProjectID: pid})
	}
}
