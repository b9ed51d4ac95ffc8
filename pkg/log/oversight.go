// SPDX-License-Identifier: BSD-3-Clause

package log

import (
	"fmt"
	"log/slog"

	"cirello.io/oversight/v2"
)

// NewOversightLogger adapts l to the variadic logger the oversight
// supervision tree expects. Tree chatter (child starts, restarts, failures)
// lands at debug level so it stays out of the way unless asked for.
func NewOversightLogger(l *slog.Logger) oversight.Logger {
	return func(args ...any) {
		l.Debug("oversight", "msg", fmt.Sprint(args...))
	}
}
