// Package logging provides structured logging configuration using zerolog.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration. Level is a plain string because it
// arrives straight from the LOG_LEVEL environment variable.
type Config struct {
	// Level is the minimum log level: debug, info, warn or error.
	// Unknown values fall back to info.
	Level string

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// Setup configures the global zerolog logger.
func Setup(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	output := cfg.Output
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: cfg.Output}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Cache operations (hit/miss, key, TTL)
//   - Tile resolution tier (disk, cache, upstream)
//
// Info: Normal operation events
//   - Cache miss stored (key, TTL)
//   - Server startup/shutdown
//
// Warn: Warning conditions that don't prevent operation
//   - Upstream timeouts and error statuses
//   - Cache write failures (response still served)
//   - Quota rejections
//
// Error: Error conditions requiring attention
//   - Unexpected upstream faults (surfaced as 500)
//   - Configuration errors
//
// Context Fields:
//   - component: package emitting the log line
//   - cache_key: derived cache key
//   - quadkey: canopy tile identifier
//   - status: upstream HTTP status code
//   - ttl: cache entry TTL
