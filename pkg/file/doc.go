// SPDX-License-Identifier: BSD-3-Clause

// Package file provides atomic file creation and replacement built on the
// write-to-temp-then-rename pattern, so readers never observe a partially
// written file.
//
// The daemon uses it to persist its instance id under the system directory
// (see pkg/id): many concurrently starting daemons may race to create the
// id file, and AtomicCreateFile's RENAME_NOREPLACE semantics guarantee that
// exactly one of them wins while the rest read the winner's value.
//
// # Operations
//
//   - AtomicCreateFile stages content in a temporary file and renames it
//     into place with RENAME_NOREPLACE, failing with ErrFileAlreadyExists
//     if the target exists. Use it when losing the race must be observable,
//     e.g. first-writer-wins identity files.
//
//   - AtomicUpdateFile stages content the same way and renames it over the
//     target unconditionally, creating the file if absent. Use it when the
//     latest writer should win.
//
// Both operations stage the temporary file in the target's own directory so
// the final rename never crosses a filesystem boundary.
//
// # Usage
//
//	err := file.AtomicCreateFile(path, []byte(id), 0o600)
//	switch {
//	case err == nil:
//		// this process created the file
//	case errors.Is(err, file.ErrFileAlreadyExists):
//		// another process won; read the file instead
//	default:
//		// staging or rename failed
//	}
//
// The package is Linux-only: RENAME_NOREPLACE is a renameat2 flag, which is
// the same portability envelope as the rest of the daemon's process-group
// handling.
package file
