// SPDX-License-Identifier: BSD-3-Clause

package log

import (
	"log"
	"log/slog"
)

// NewStdLoggerAt wraps logger in a stdlib log.Logger emitting at level, for
// third-party code that only accepts the standard interface.
func NewStdLoggerAt(logger *slog.Logger, level slog.Level) *log.Logger {
	return slog.NewLogLogger(logger.Handler(), level)
}

// RedirectStdLog routes the stdlib log package's default output through l at
// Info level, stripping the stdlib's own prefix and timestamp so dependency
// output gets the same structure as everything else.
func RedirectStdLog(l *slog.Logger) {
	log.SetFlags(0)
	log.SetPrefix("")
	log.SetOutput(NewStdLoggerAt(l, slog.LevelInfo).Writer())
}
