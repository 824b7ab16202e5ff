// Package cli implements the aasgraph command-line interface.
//
// The commands read AAS documents in JSON, CBOR or YAML, report what the
// failsafe decoder had to drop, convert between formats, resolve references,
// draw the object graph and manage a local directory-backed object store.
//
// # Commands
//
//   - validate: Decode documents and list the recovered problems
//   - convert: Rewrite a document in another format
//   - resolve: Follow a reference through a document (and the object store)
//   - graph: Render the containment and reference graph as DOT, SVG, PDF or PNG
//   - id: Generate fresh identifiers
//   - store: Add, show, list and remove objects in the file store
//   - cache: Manage the result cache
//
// # Configuration
//
// Settings are read from $XDG_CONFIG_HOME/aasgraph/config.toml (see
// [Config]); command-line flags override them.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Decoded 3 documents (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
