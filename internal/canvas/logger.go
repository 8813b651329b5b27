package canvas

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record; Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used by every canvas. By default the package is
// silent. Pass nil to silence it again.
//
// Levels:
//   - [slog.LevelDebug]: scope open/close, clip registration
//   - [slog.LevelWarn]: scopes force-closed by Close
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the package logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
