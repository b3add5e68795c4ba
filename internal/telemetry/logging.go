// Package telemetry wires structured logging and metrics for the
// scheduler binary, grounded on joeycumines-go-utilpkg/logiface-zerolog's
// single-shared-logger setup and dshills-langgraph-go's direct use of
// prometheus/client_golang. It exists so cmd/scheduler and the
// internal/config-resolved search packages share one construction path
// instead of each reaching for the standard library's log package.
package telemetry

import (
	"io"

	"github.com/rs/zerolog"
)

// NewLogger configures a single zerolog.Logger writing to w at level,
// with a Unix-seconds timestamp (set through the package-global
// zerolog.TimeFieldFormat) and a component=scheduler field attached to
// every event,
// the same shared-logger-plus-context pattern logiface-zerolog wraps.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(w).Level(level).With().Timestamp().Str("component", "scheduler").Logger()
}
