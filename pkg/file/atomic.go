// SPDX-License-Identifier: BSD-3-Clause

//go:build linux

package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/unix"
)

// stageTemp writes data to a fresh temporary file next to filename (so the
// final rename stays within one filesystem) and returns its path. The caller
// is responsible for renaming or removing it.
func stageTemp(filename string, data []byte, perm os.FileMode) (string, error) {
	dir := filepath.Dir(filename)

	tmp, err := os.CreateTemp(dir, fmt.Sprintf(".%s.tmp.*", filepath.Base(filename)))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTemporaryFileCreation, err)
	}
	tmpname := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpname)
		return "", fmt.Errorf("%w: %w", ErrTemporaryFileWrite, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpname)
		return "", fmt.Errorf("%w: %w", ErrTemporaryFileWrite, err)
	}
	if err := os.Chmod(tmpname, perm); err != nil {
		_ = os.Remove(tmpname)
		return "", fmt.Errorf("%w: %w", ErrTemporaryFileWrite, err)
	}

	return tmpname, nil
}

// AtomicCreateFile creates filename with data, failing with
// ErrFileAlreadyExists if it is already present. Concurrent creators race on
// the final RENAME_NOREPLACE rename, so exactly one wins and the rest can
// fall back to reading the winner's content.
func AtomicCreateFile(filename string, data []byte, perm os.FileMode) error {
	tmpname, err := stageTemp(filename, data, perm)
	if err != nil {
		return err
	}

	if err := unix.Renameat2(unix.AT_FDCWD, tmpname, unix.AT_FDCWD, filename, unix.RENAME_NOREPLACE); err != nil {
		_ = os.Remove(tmpname)
		if errors.Is(err, syscall.EEXIST) {
			return fmt.Errorf("%w: %s", ErrFileAlreadyExists, filename)
		}
		return fmt.Errorf("%w: %w", ErrAtomicRename, err)
	}

	return nil
}

// AtomicUpdateFile replaces filename's content with data, creating the file
// if it does not exist yet. Readers observe either the old content or the
// new, never a partial write.
func AtomicUpdateFile(filename string, data []byte, perm os.FileMode) error {
	tmpname, err := stageTemp(filename, data, perm)
	if err != nil {
		return err
	}

	if err := os.Rename(tmpname, filename); err != nil {
		_ = os.Remove(tmpname)
		return fmt.Errorf("%w: %w", ErrAtomicRename, err)
	}

	return nil
}
