// SPDX-License-Identifier: BSD-3-Clause

package config

import "github.com/ya7on/tutti/pkg/tuttiapi"

// rawProject mirrors the on-disk shape of a project file before it is
// adapted into tuttiapi.Project. Field-level validation (empty cmd, blank
// cmd elements, unresolved deps, restart policy, acyclicity) is left to
// tuttiapi.Project.Validate rather than duplicated here.
type rawProject struct {
	Version  int                    `toml:"version"`
	Services map[string]rawService `toml:"services"`
}

type rawService struct {
	Cmd         []string          `toml:"cmd"`
	Cwd         string            `toml:"cwd"`
	Env         map[string]string `toml:"env"`
	Deps        []string          `toml:"deps"`
	Restart     string            `toml:"restart"`
	Healthcheck *struct{}         `toml:"healthcheck"`
}

// toProject adapts the raw, format-specific shape into the shared
// tuttiapi.Project, stamping it with the id derived from the file it came
// from.
func (r rawProject) toProject(id tuttiapi.ProjectID) tuttiapi.Project {
	version := r.Version
	if version == 0 {
		version = 1
	}

	services := make(map[string]tuttiapi.Service, len(r.Services))
	for name, raw := range r.Services {
		var healthcheck *tuttiapi.Healthcheck
		if raw.Healthcheck != nil {
			healthcheck = &tuttiapi.Healthcheck{}
		}

		services[name] = tuttiapi.Service{
			Cmd:         raw.Cmd,
			Cwd:         raw.Cwd,
			Env:         raw.Env,
			Deps:        raw.Deps,
			Restart:     tuttiapi.RestartPolicy(raw.Restart),
			Healthcheck: healthcheck,
		}
	}

	return tuttiapi.Project{
		Version:  version,
		ID:       id,
		Services: services,
	}
}
