package roast

import (
	"log/slog"
	"sync/atomic"
)

// silent discards every record; its handler reports every level disabled,
// so log calls cost no formatting.
var silent = slog.New(slog.DiscardHandler)

// current is the logger shared by roast and its sub-packages. Image decode
// workers log through it while the editor goroutine may swap it.
var current atomic.Pointer[slog.Logger]

func init() { current.Store(silent) }

// SetLogger routes the log output of roast and its sub-packages to l.
// roast is silent until it is called; nil makes it silent again.
//
// Levels:
//   - [slog.LevelDebug]: drag sessions, container layout, decode cache hits
//   - [slog.LevelInfo]: image loaded, export written, script finished
//   - [slog.LevelWarn]: rejected input, failed or stale image loads
//   - [slog.LevelError]: export failures
//
//	roast.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger set by SetLogger. canvas, loader and session
// log through it. It is safe for concurrent use.
func Logger() *slog.Logger {
	return current.Load()
}
