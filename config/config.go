// Package config holds the settings of the exprtree command.
//
// Settings are read from a TOML or YAML file, chosen by extension:
//
//	[log]
//	level = "info"   # debug, info, warn, error
//	format = "text"  # text, json
//
//	[output]
//	precision = -1   # significant digits for results, -1 for shortest exact
//	color = true
package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Config is the complete command configuration.
type Config struct {
	Log    LogConfig    `toml:"log" yaml:"log"`
	Output OutputConfig `toml:"output" yaml:"output"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// OutputConfig controls how results are written.
type OutputConfig struct {
	Precision int  `toml:"precision" yaml:"precision"`
	Color     bool `toml:"color" yaml:"color"`
}

// Format is a configuration file format.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputConfig{
			Precision: -1,
			Color:     true,
		},
	}
}

// Load reads path on top of the defaults. An empty path returns Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %q", path)
	}
	if err := cfg.decode(data, detectFormat(path)); err != nil {
		return nil, errors.Wrapf(err, "parse config %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %q", path)
	}
	return cfg, nil
}

// LoadFromString is like Load for in-memory content.
func LoadFromString(content string, format Format) (*Config, error) {
	cfg := Default()
	if err := cfg.decode([]byte(content), format); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatTOML
}

func (c *Config) decode(data []byte, format Format) error {
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return errors.Wrap(err, "yaml")
		}
	default:
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return errors.Wrap(err, "toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return errors.Newf("toml: unknown key %q", undecoded[0].String())
		}
	}
	return nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if _, ok := levels[strings.ToLower(c.Log.Level)]; !ok {
		return errors.WithHint(
			errors.Newf("invalid log level %q", c.Log.Level),
			"use one of debug, info, warn, error",
		)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.Newf("invalid log format %q", c.Log.Format)
	}
	if c.Output.Precision < -1 {
		return errors.Newf("invalid precision %d", c.Output.Precision)
	}
	return nil
}

// SlogLevel returns the configured level.
func (c *Config) SlogLevel() slog.Level {
	return levels[strings.ToLower(c.Log.Level)]
}

// NewLogger builds a logger writing to w. verbose forces debug level.
func (c *Config) NewLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
