// SPDX-License-Identifier: BSD-3-Clause

package file

import "errors"

var (
	// ErrTemporaryFileCreation indicates the staging file could not be
	// created next to the target.
	ErrTemporaryFileCreation = errors.New("failed to create temporary file")
	// ErrTemporaryFileWrite indicates the staging file could not be
	// written, closed, or chmodded before the final rename.
	ErrTemporaryFileWrite = errors.New("failed to write temporary file")
	// ErrAtomicRename indicates the staged content could not be renamed
	// into place.
	ErrAtomicRename = errors.New("failed to atomically rename temporary file")
	// ErrFileAlreadyExists indicates AtomicCreateFile lost the creation
	// race: the target already exists.
	ErrFileAlreadyExists = errors.New("file already exists")
)
