package blueprint

import (
	"io"
	"log/slog"
	"math"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func init() { SetLogger(nil) }

// silent drops every record; no level is enabled.
func silent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt32)}))
}

// SetLogger sets the logger shared by blueprint, pdfsurface and the MCP
// server. Generation logs pages added and a per-run summary at Debug, and
// ignored loop template content at Warn. A nil logger silences logging,
// which is the default. It is safe to call concurrently with generation.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent()
	}
	logger.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return logger.Load()
}
