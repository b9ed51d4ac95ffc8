// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// findDaemonBinary locates the tuttid executable, preferring one installed
// alongside the running tutti binary over whatever "tuttid" resolves to on
// PATH, so a developer's locally built pair is picked up before a system
// install.
func findDaemonBinary() (string, error) {
	if self, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(self), "tuttid")
		if info, statErr := os.Stat(sibling); statErr == nil && !info.IsDir() {
			return sibling, nil
		}
	}

	path, err := exec.LookPath("tuttid")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDaemonBinaryNotFound, err)
	}

	return path, nil
}
