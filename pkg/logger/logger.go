package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

const (
	// FormatJSON writes one JSON object per record.
	FormatJSON = "json"

	// FormatText writes key=value records.
	FormatText = "text"
)

// NewStructuredLogger creates a structured logger writing to w.
// Module name and version are attached to every record.
// Source locations are included at debug level only.
// Parameters:
//   - w: The destination of the records.
//   - module: The name of the application using the logger.
//   - version: The version of the application (e.g., "v1.0.0").
//   - level: The log level as a string (e.g., "debug", "info", "warn", "error").
//   - format: FormatJSON or FormatText. Anything else falls back to JSON.
//
// Returns:
//   - *slog.Logger: The configured logger.
func NewStructuredLogger(w io.Writer, module, version, level, format string) *slog.Logger {
	lev := ParseLogLevel(level)
	opts := &slog.HandlerOptions{
		Level:     lev,
		AddSource: lev <= slog.LevelDebug,
	}

	var h slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), FormatText) {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	return slog.New(h).With("module", module, "version", version)
}

// NewLogLogger adapts the default slog logger for APIs that still take a
// *log.Logger, such as http.Server.ErrorLog.
func NewLogLogger(level slog.Level) *log.Logger {
	return slog.NewLogLogger(slog.Default().Handler(), level)
}

// SetDefaultLogger sets a stderr structured logger as the slog default.
func SetDefaultLogger(module, version, level, format string) {
	slog.SetDefault(NewStructuredLogger(os.Stderr, module, version, level, format))
}

// ParseLogLevel converts a string representation of a log level into a slog.Level.
// Unrecognized values map to slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
