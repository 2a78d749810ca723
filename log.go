package rackspace

import (
	"os"

	"github.com/rs/zerolog"
)

// NewLogger creates a structured zerolog.Logger writing to stderr at the given
// level. Unknown levels fall back to info.
func NewLogger(level string) zerolog.Logger {
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("service", "rackspace").Logger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return logger.Level(lvl)
}
