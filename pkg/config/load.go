// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ya7on/tutti/pkg/tuttiapi"
)

// parser decodes text from a configuration file into a rawProject. Kept as
// a seam so a second format can register alongside toml without touching
// LoadFromPath or ParseAuto.
type parser func(text string) (rawProject, error)

var parsersByExt = map[string]parser{
	".toml": parseTOML,
}

// LoadFromPath reads path and parses it into a validated tuttiapi.Project,
// dispatching on path's extension.
func LoadFromPath(path string) (tuttiapi.Project, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return tuttiapi.Project{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	return ParseAuto(string(text), path)
}

// ParseAuto parses text as a configuration file, dispatching on path's
// extension to pick the format, then validates the result.
func ParseAuto(text string, path string) (tuttiapi.Project, error) {
	parse, ok := parsersByExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return tuttiapi.Project{}, fmt.Errorf("%w: %s", ErrUnknownExtension, path)
	}

	raw, err := parse(text)
	if err != nil {
		return tuttiapi.Project{}, err
	}

	id, err := tuttiapi.NewProjectID(path)
	if err != nil {
		return tuttiapi.Project{}, err
	}

	project := raw.toProject(id)
	if err := project.Validate(); err != nil {
		return tuttiapi.Project{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return project, nil
}

func parseTOML(text string) (rawProject, error) {
	var raw rawProject
	if _, err := toml.Decode(text, &raw); err != nil {
		return rawProject{}, fmt.Errorf("config: parse toml: %w", err)
	}

	return raw, nil
}
