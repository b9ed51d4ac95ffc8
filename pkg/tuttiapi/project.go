// SPDX-License-Identifier: BSD-3-Clause

package tuttiapi

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// RestartPolicy controls whether a service is respawned after it stops.
type RestartPolicy string

const (
	// RestartNever leaves a stopped service stopped. This is the default.
	RestartNever RestartPolicy = "never"
	// RestartAlways respawns the service whenever it stops, unless the
	// supervisor itself is shutting down.
	RestartAlways RestartPolicy = "always"
)

// ProjectID is the opaque identity of a loaded project. It is derived from
// the absolute path of the project's configuration file, so two Projects
// loaded from the same file compare equal regardless of when they were
// loaded.
type ProjectID struct {
	path string
}

// NewProjectID derives a ProjectID from a configuration file path. The path
// is cleaned and made absolute so that two different spellings of the same
// file ("./tutti.toml" and "/home/user/tutti.toml") produce the same id.
func NewProjectID(path string) (ProjectID, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ProjectID{}, fmt.Errorf("%w: %w", ErrInvalidProjectPath, err)
	}

	return ProjectID{path: filepath.Clean(abs)}, nil
}

// String returns the human-printable form of the project id, which is the
// absolute path it was derived from.
func (p ProjectID) String() string {
	return p.path
}

// IsZero reports whether p is the zero-value ProjectID.
func (p ProjectID) IsZero() bool {
	return p.path == ""
}

// MarshalJSON implements json.Marshaler, encoding a ProjectID as its path
// string so it round-trips across the wire.
func (p ProjectID) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.path)
}

// UnmarshalJSON implements json.Unmarshaler for ProjectID.
func (p *ProjectID) UnmarshalJSON(data []byte) error {
	var path string
	if err := json.Unmarshal(data, &path); err != nil {
		return fmt.Errorf("unmarshal project id: %w", err)
	}
	p.path = path

	return nil
}

// Service is the declared recipe for a single long-running child process.
type Service struct {
	// Cmd is argv for the child process. Cmd[0] is the executable.
	Cmd []string `json:"cmd" toml:"cmd"`
	// Cwd is the working directory the child is started in. Empty means
	// inherit the daemon's working directory.
	Cwd string `json:"cwd,omitempty" toml:"cwd,omitempty"`
	// Env overrides/extends the inherited environment.
	Env map[string]string `json:"env,omitempty" toml:"env,omitempty"`
	// Deps are the names of services that must reach Running before this
	// service may start.
	Deps []string `json:"deps,omitempty" toml:"deps,omitempty"`
	// Restart is the restart policy applied when the service stops.
	Restart RestartPolicy `json:"restart,omitempty" toml:"restart,omitempty"`
	// Healthcheck is reserved for a future readiness-probe protocol. Its
	// absence means the service is declared Running immediately after
	// spawn succeeds.
	Healthcheck *Healthcheck `json:"healthcheck,omitempty" toml:"healthcheck,omitempty"`
}

// Healthcheck is a placeholder for a future probe configuration. No fields
// are defined yet; its only observable effect today is that a non-nil value
// disables the "ready immediately after spawn" shortcut in the supervisor.
type Healthcheck struct{}

// Validate checks the invariants a Service must hold in isolation (it
// cannot check that Deps resolve within the project; that is the project's
// job since it requires the full service map).
func (s Service) Validate(name string) error {
	if len(s.Cmd) == 0 {
		return fmt.Errorf("%w: service %q", ErrEmptyCmd, name)
	}
	for _, arg := range s.Cmd {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("%w: service %q", ErrBlankCmdElement, name)
		}
	}
	switch s.Restart {
	case "", RestartNever, RestartAlways:
	default:
		return fmt.Errorf("%w: service %q: %q", ErrInvalidRestartPolicy, name, s.Restart)
	}

	return nil
}

// EffectiveRestart returns the restart policy, defaulting to RestartNever.
func (s Service) EffectiveRestart() RestartPolicy {
	if s.Restart == "" {
		return RestartNever
	}

	return s.Restart
}

// Project is an immutable snapshot of a loaded configuration file.
type Project struct {
	Version  int                `json:"version"`
	ID       ProjectID          `json:"id"`
	Services map[string]Service `json:"services"`
}

// SortedServiceNames returns the service names of p in deterministic
// (alphabetical) order, so iteration over a project is reproducible.
func (p Project) SortedServiceNames() []string {
	names := make([]string, 0, len(p.Services))
	for name := range p.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Validate checks every project-level invariant: non-empty, non-blank cmd; every dep
// resolves within the project; the dependency relation is acyclic.
func (p Project) Validate() error {
	for _, name := range p.SortedServiceNames() {
		svc := p.Services[name]
		if err := svc.Validate(name); err != nil {
			return err
		}
		for _, dep := range svc.Deps {
			if _, ok := p.Services[dep]; !ok {
				return fmt.Errorf("%w: service %q depends on unknown service %q", ErrUnknownDependency, name, dep)
			}
		}
	}

	return p.checkAcyclic()
}

func (p Project) checkAcyclic() error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(p.Services))

	var visit func(name string) error
	visit = func(name string) error {
		switch color[name] {
		case black:
			return nil
		case gray:
			return fmt.Errorf("%w: involving service %q", ErrCyclicDependency, name)
		}
		color[name] = gray
		for _, dep := range p.Services[name].Deps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		color[name] = black

		return nil
	}

	for _, name := range p.SortedServiceNames() {
		if err := visit(name); err != nil {
			return err
		}
	}

	return nil
}
