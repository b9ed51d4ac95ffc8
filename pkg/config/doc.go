// SPDX-License-Identifier: BSD-3-Clause

// Package config loads a tuttiapi.Project from a configuration file on
// disk. Parsing is dispatched on the file's extension so that a future
// format can be added without touching callers; today TOML is the only
// registered parser.
package config
