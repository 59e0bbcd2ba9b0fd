// Package config loads the configuration shared by the hillchart commands.
//
// Values are layered from lowest to highest precedence:
//  1. defaults (New)
//  2. a YAML file, if a path is given or HILLCHART_CONFIG is set
//  3. environment variables prefixed with HILLCHART_, where a double
//     underscore separates nested keys (HILLCHART_SETTINGS__HILL__COLOUR)
package config

import (
	"context"
	"os"
	"strings"

	"git.unix.lgbt/diamondburned/hillchart"
	"git.unix.lgbt/diamondburned/hillchart/tables"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "HILLCHART_"

// EnvConfigPath names the environment variable holding the YAML file path.
const EnvConfigPath = EnvPrefix + "CONFIG"

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: none, error, warning, info, debug.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataPath is the table rendered on the index page. The format is guessed
	// from the extension.
	DataPath string `koanf:"data_path"`

	// Sheet selects the sheet of an XLSX data file.
	Sheet string `koanf:"sheet"`

	// Width and Height are the default viewport.
	Width  float64 `koanf:"width"`
	Height float64 `koanf:"height"`

	// Minify minifies rendered HTML and SVG.
	Minify bool `koanf:"minify"`

	// Columns maps roles to header names.
	Columns Columns `koanf:"columns"`

	// Settings is the default chart settings.
	Settings hillchart.Settings `koanf:"settings"`
}

// Columns holds the header name of the column carrying each role.
type Columns struct {
	Progress string `koanf:"progress"`
	Project  string `koanf:"project"`
	Colour   string `koanf:"colour"`
	Size     string `koanf:"size"`
}

// RoleMap returns the columns as a role map.
func (c Columns) RoleMap() hillchart.RoleMap {
	return hillchart.RoleMap{
		hillchart.RoleProgress: c.Progress,
		hillchart.RoleProject:  c.Project,
		hillchart.RoleColour:   c.Colour,
		hillchart.RoleSize:     c.Size,
	}
}

// TableOptions returns the options for reading tables.
func (c *Config) TableOptions() tables.Options {
	return tables.Options{
		Roles: c.Columns.RoleMap(),
		Sheet: c.Sheet,
	}
}

// Viewport returns the default viewport.
func (c *Config) Viewport() hillchart.Viewport {
	return hillchart.Viewport{Width: c.Width, Height: c.Height}
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel: "warning",
		Addr:     ":8080",
		Width:    800,
		Height:   400,
		Minify:   true,
		Columns: Columns{
			Progress: string(hillchart.RoleProgress),
			Project:  string(hillchart.RoleProject),
			Colour:   string(hillchart.RoleColour),
			Size:     string(hillchart.RoleSize),
		},
		Settings: hillchart.DefaultSettings(),
	}
}

// Load builds a Config by layering defaults, an optional YAML file and
// environment variables. If path is empty, then HILLCHART_CONFIG is used.
func Load(_ context.Context, path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load %q", path)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env")
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	cfg.Settings = cfg.Settings.Resolve()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.Wrap(ErrInvalidConfig, "addr must not be empty")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "viewport %vx%v must be positive", c.Width, c.Height)
	}
	if c.Columns.Progress == "" || c.Columns.Project == "" {
		return errors.Wrap(ErrInvalidConfig, "progress and project columns must be named")
	}
	return nil
}
