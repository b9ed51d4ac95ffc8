// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ya7on/tutti/pkg/tuttiapi"
)

func TestParseAutoTOML(t *testing.T) {
	text := `
version = 100500

[services.api]
cmd = ["cargo","run","--bin","api"]
cwd = "/home/user"
env = { RUST_LOG = "info" }
deps = ["db"]
restart = "always"

[services.db]
cmd = ["postgres","-D",".pg"]
restart = "never"
`
	project, err := ParseAuto(text, "/tmp/config.toml")
	if err != nil {
		t.Fatalf("ParseAuto: %v", err)
	}

	if project.Version != 100500 {
		t.Fatalf("Version = %d, want 100500", project.Version)
	}

	api, ok := project.Services["api"]
	if !ok {
		t.Fatal("missing service \"api\"")
	}
	if got, want := api.Cmd, []string{"cargo", "run", "--bin", "api"}; !equalStrings(got, want) {
		t.Fatalf("api.Cmd = %v, want %v", got, want)
	}
	if api.Cwd != "/home/user" {
		t.Fatalf("api.Cwd = %q, want /home/user", api.Cwd)
	}
	if api.Env["RUST_LOG"] != "info" {
		t.Fatalf("api.Env[RUST_LOG] = %q, want info", api.Env["RUST_LOG"])
	}
	if got, want := api.Deps, []string{"db"}; !equalStrings(got, want) {
		t.Fatalf("api.Deps = %v, want %v", got, want)
	}
	if api.Restart != tuttiapi.RestartAlways {
		t.Fatalf("api.Restart = %q, want always", api.Restart)
	}

	db := project.Services["db"]
	if db.Cwd != "" {
		t.Fatalf("db.Cwd = %q, want empty", db.Cwd)
	}
	if len(db.Deps) != 0 {
		t.Fatalf("db.Deps = %v, want empty", db.Deps)
	}
	if db.Restart != tuttiapi.RestartNever {
		t.Fatalf("db.Restart = %q, want never", db.Restart)
	}
}

func TestParseAutoDefaultsVersionToOne(t *testing.T) {
	text := `
[services.api]
cmd = ["cargo","run","--bin","api"]

[services.db]
cmd = ["postgres","-D",".pg"]
`
	project, err := ParseAuto(text, "/tmp/config.toml")
	if err != nil {
		t.Fatalf("ParseAuto: %v", err)
	}
	if project.Version != 1 {
		t.Fatalf("Version = %d, want 1", project.Version)
	}
}

func TestParseAutoUnknownExtension(t *testing.T) {
	_, err := ParseAuto("anything", "/tmp/config.unknown")
	if !errors.Is(err, ErrUnknownExtension) {
		t.Fatalf("err = %v, want ErrUnknownExtension", err)
	}
}

func TestParseAutoRejectsEmptyCmd(t *testing.T) {
	text := `
[services.api]
cmd = []
`
	_, err := ParseAuto(text, "/tmp/config.toml")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestParseAutoRejectsUnresolvedDependency(t *testing.T) {
	text := `
[services.api]
cmd = ["run"]
deps = ["missing"]
`
	_, err := ParseAuto(text, "/tmp/config.toml")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
