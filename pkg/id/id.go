// SPDX-License-Identifier: BSD-3-Clause

package id

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ya7on/tutti/pkg/file"
)

// NewID generates and returns a new UUID as a string.
func NewID() string {
	return uuid.New().String()
}

// readID reads and parses the UUID stored at fullPath.
func readID(fullPath string) (string, error) {
	b, err := os.ReadFile(fullPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileRead, err)
	}

	parsed, err := uuid.ParseBytes(bytes.TrimSpace(b))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidUUID, err)
	}

	return parsed.String(), nil
}

// GetOrCreatePersistentID returns the UUID stored in name under path,
// creating both the directory and the file with a fresh UUID if they do not
// exist yet. Creation is atomic: when several processes race, exactly one
// writes the file and every caller returns the same winning id.
func GetOrCreatePersistentID(name, path string) (string, error) {
	fullPath := filepath.Join(path, name)

	if _, err := os.Stat(fullPath); err == nil {
		return readID(fullPath)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %w", ErrFileStat, err)
	}

	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return "", fmt.Errorf("%w: %w", ErrDirectoryCreation, err)
	}

	fresh := uuid.New().String()

	err := file.AtomicCreateFile(fullPath, []byte(fresh), 0o600)
	switch {
	case err == nil:
		return fresh, nil
	case errors.Is(err, file.ErrFileAlreadyExists) || os.IsExist(err):
		// Another process won the creation race; its id is the real one.
		return readID(fullPath)
	default:
		return "", fmt.Errorf("%w: %w", ErrFileCreation, err)
	}
}

// UpdatePersistentID generates a new UUID and atomically replaces the value
// stored in name under path with it, returning the new id.
func UpdatePersistentID(name, path string) (string, error) {
	fresh := uuid.New().String()

	if err := file.AtomicUpdateFile(filepath.Join(path, name), []byte(fresh), 0o600); err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileUpdate, err)
	}

	return fresh, nil
}
