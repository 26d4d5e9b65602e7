// Package logging builds the zerolog logger used by the commands.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tetsuo/ncdt/internal/config"
)

const (
	EnvLogLevel   = "NCDT_LOG_LEVEL"
	EnvLogNoColor = "NCDT_LOG_NOCOLOR"
)

// New returns a console logger writing to out. Environment variables
// override the level and color settings from cfg.
func New(out io.Writer, app string, cfg config.Config) zerolog.Logger {
	level, noColor := cfg.LogLevel, cfg.LogNoColor
	if lvl, ok := config.ParseLevel(os.Getenv(EnvLogLevel)); ok {
		level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		noColor = v
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger()
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
