// SPDX-License-Identifier: BSD-3-Clause

//go:build unix

package process

// Compile-time assertion that UnixManager implements Manager.
var _ Manager = (*UnixManager)(nil)
