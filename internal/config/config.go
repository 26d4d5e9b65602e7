// Package config loads ncdtdump settings from a TOML file.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/tetsuo/ncdt"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the decoder, output and logging settings.
type Config struct {
	MaxDepth       int
	SkipUnknownTLV bool
	Format         string
	LogLevel       zerolog.Level
	LogNoColor     bool
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		MaxDepth: ncdt.MaxDepth,
		Format:   FormatText,
		LogLevel: zerolog.InfoLevel,
	}
}

// DecoderOptions returns the decoder options for these settings.
func (c Config) DecoderOptions() []ncdt.Option {
	opts := []ncdt.Option{ncdt.WithMaxDepth(c.MaxDepth)}
	if c.SkipUnknownTLV {
		opts = append(opts, ncdt.WithUnknownTLVSkipping())
	}
	return opts
}

type fileConfig struct {
	Decoder struct {
		MaxDepth       int  `toml:"max_depth"`
		SkipUnknownTLV bool `toml:"skip_unknown_tlv"`
	} `toml:"decoder"`
	Output struct {
		Format string `toml:"format"`
	} `toml:"output"`
	Log struct {
		Level   string `toml:"level"`
		NoColor bool   `toml:"no_color"`
	} `toml:"log"`
}

// Load reads path on top of Default. Keys missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("decoder", "max_depth") {
		if raw.Decoder.MaxDepth < 1 {
			return Config{}, fmt.Errorf("parse decoder.max_depth: must be positive, got %d", raw.Decoder.MaxDepth)
		}
		cfg.MaxDepth = raw.Decoder.MaxDepth
	}

	if meta.IsDefined("decoder", "skip_unknown_tlv") {
		cfg.SkipUnknownTLV = raw.Decoder.SkipUnknownTLV
	}

	if meta.IsDefined("output", "format") {
		f, err := ParseFormat(raw.Output.Format)
		if err != nil {
			return Config{}, fmt.Errorf("parse output.format: %w", err)
		}
		cfg.Format = f
	}

	if meta.IsDefined("log", "level") {
		lvl, ok := ParseLevel(raw.Log.Level)
		if !ok {
			return Config{}, fmt.Errorf("parse log.level: unknown level %q", raw.Log.Level)
		}
		cfg.LogLevel = lvl
	}

	if meta.IsDefined("log", "no_color") {
		cfg.LogNoColor = raw.Log.NoColor
	}

	return cfg, nil
}

// ParseFormat normalizes an output format name.
func ParseFormat(raw string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(raw)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q", raw)
	}
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}
