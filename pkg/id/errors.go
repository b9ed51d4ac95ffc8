// SPDX-License-Identifier: BSD-3-Clause

package id

import "errors"

var (
	// ErrDirectoryCreation indicates the directory that should hold the
	// persistent id could not be created.
	ErrDirectoryCreation = errors.New("failed to create directory for persistent ID storage")
	// ErrFileCreation indicates the persistent id file could not be
	// created.
	ErrFileCreation = errors.New("failed to create persistent ID file")
	// ErrFileRead indicates the persistent id file could not be read.
	ErrFileRead = errors.New("failed to read persistent ID file")
	// ErrFileUpdate indicates the persistent id file could not be
	// replaced with a new value.
	ErrFileUpdate = errors.New("failed to update persistent ID file")
	// ErrFileStat indicates the persistent id file's existence could not
	// be determined.
	ErrFileStat = errors.New("failed to stat persistent ID file")
	// ErrInvalidUUID indicates the persistent id file does not contain a
	// valid UUID.
	ErrInvalidUUID = errors.New("invalid UUID format in persistent ID file")
)
