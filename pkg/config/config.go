// Package config loads lifeline settings from a file and the environment.
//
// The file format follows the extension: .toml is decoded with
// BurntSushi/toml, .yaml and .yml with yaml.v3. Environment variables
// prefixed with LIFELINE_ override file values afterwards, e.g.
// LIFELINE_LAYOUT_WRAP_WIDTH=30 or LIFELINE_CACHE_BACKEND=redis.
//
// Example lifeline.toml:
//
//	[layout]
//	wrap_width = 24
//	row_size = 5
//
//	[render]
//	title = "NECTIM"
//	subtitle = "Línea de Vida - Terceros"
//	formats = ["svg", "json"]
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/lifeline/pkg/cache"
	apperr "github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/timeline"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LIFELINE_"

// Config is the complete lifeline configuration.
type Config struct {
	Layout timeline.Config `toml:"layout" yaml:"layout" envPrefix:"LAYOUT_"`
	Render RenderConfig    `toml:"render" yaml:"render" envPrefix:"RENDER_"`
	Cache  cache.Options   `toml:"cache" yaml:"cache" envPrefix:"CACHE_"`
	Server ServerConfig    `toml:"server" yaml:"server" envPrefix:"SERVER_"`
}

// RenderConfig controls the output sinks.
type RenderConfig struct {
	Formats  []string `toml:"formats" yaml:"formats" env:"FORMATS" envSeparator:","`
	Title    string   `toml:"title" yaml:"title" env:"TITLE"`
	Subtitle string   `toml:"subtitle" yaml:"subtitle" env:"SUBTITLE"`
	Scale    float64  `toml:"scale" yaml:"scale" env:"SCALE"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr            string `toml:"addr" yaml:"addr" env:"ADDR"`
	ReadTimeoutSec  int    `toml:"read_timeout_sec" yaml:"read_timeout_sec" env:"READ_TIMEOUT_SEC"`
	WriteTimeoutSec int    `toml:"write_timeout_sec" yaml:"write_timeout_sec" env:"WRITE_TIMEOUT_SEC"`
}

// Default values for the non-layout sections.
const (
	DefaultFormat          = "svg"
	DefaultScale           = 80.0
	DefaultAddr            = ":8080"
	DefaultReadTimeoutSec  = 15
	DefaultWriteTimeoutSec = 30
)

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Layout: timeline.DefaultConfig(),
		Render: RenderConfig{
			Formats: []string{DefaultFormat},
			Scale:   DefaultScale,
		},
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ReadTimeoutSec:  DefaultReadTimeoutSec,
			WriteTimeoutSec: DefaultWriteTimeoutSec,
		},
	}
}

// Load reads path (if non-empty) on top of the defaults, then applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "config file %s", path)
			}
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := Decode(data, filepath.Ext(path), &cfg); err != nil {
			return cfg, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	cfg.setDefaults()
	return cfg, cfg.Validate()
}

// Decode parses data in the format named by ext (".toml", ".yaml", ".yml")
// into cfg. Keys absent from data keep their current values.
func Decode(data []byte, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
		if err != nil {
			return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return apperr.New(apperr.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return apperr.New(apperr.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	return nil
}

// ApplyEnv overrides cfg with LIFELINE_* environment variables.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "parse env")
	}
	return nil
}

func (c *Config) setDefaults() {
	c.Layout = c.Layout.WithDefaults()
	if len(c.Render.Formats) == 0 {
		c.Render.Formats = []string{DefaultFormat}
	}
	if c.Render.Scale == 0 {
		c.Render.Scale = DefaultScale
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeoutSec == 0 {
		c.Server.ReadTimeoutSec = DefaultReadTimeoutSec
	}
	if c.Server.WriteTimeoutSec == 0 {
		c.Server.WriteTimeoutSec = DefaultWriteTimeoutSec
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if c.Render.Scale <= 0 {
		return apperr.New(apperr.ErrCodeInvalidConfig, "render.scale must be positive, got %g", c.Render.Scale)
	}
	if err := apperr.ValidateLabel(c.Render.Title); err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "render.title")
	}
	if err := apperr.ValidateLabel(c.Render.Subtitle); err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "render.subtitle")
	}
	switch c.Cache.Backend {
	case "", cache.BackendNone, cache.BackendFile, cache.BackendRedis, cache.BackendMongo:
	default:
		return apperr.New(apperr.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}
