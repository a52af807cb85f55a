// Package debug flags programmer errors such as missing resolvers or fetchers.
//
// Builds tagged with siftdebug panic on a failed assertion. Every other build
// logs a warning and lets the caller fall back to its safe default.
package debug

import (
	"fmt"
	"log/slog"
)

// Assert reports msg when cond is false. It returns cond so call sites can
// branch into their fallback.
func Assert(logger *slog.Logger, cond bool, msg string, args ...any) bool {
	if cond {
		return true
	}

	if Enabled {
		panic(fmt.Sprint(append([]any{msg + " "}, args...)...))
	}

	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn(msg, args...)

	return false
}
