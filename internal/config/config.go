// Package config loads server configuration from an optional YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

var (
	ErrInvalidPort        = errors.New("http port must be between 1 and 65535")
	ErrUnknownStoreDriver = errors.New("store driver must be memory or sqlite")
	ErrUnknownLogFormat   = errors.New("log format must be text or json")
	ErrInvalidLogLevel    = errors.New("log level must be debug, info, warn or error")
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

type Config struct {
	App     AppConfig     `yaml:"app" env-prefix:"APP_"`
	HTTP    HTTPConfig    `yaml:"http" env-prefix:"HTTP_"`
	Store   StoreConfig   `yaml:"store" env-prefix:"STORE_"`
	CORS    CORSConfig    `yaml:"cors" env-prefix:"CORS_"`
	Metrics MetricsConfig `yaml:"metrics" env-prefix:"METRICS_"`
	Health  HealthConfig  `yaml:"health" env-prefix:"HEALTH_"`
}

type AppConfig struct {
	Name        string `yaml:"name" env:"NAME" env-default:"jokebox"`
	Environment string `yaml:"environment" env:"ENVIRONMENT" env-default:"development"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat   string `yaml:"log_format" env:"LOG_FORMAT" env-default:"text"`
}

// SlogLevel converts LogLevel. Call Validate first; unknown values map to Info.
func (a AppConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(a.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

type HTTPConfig struct {
	Port            int           `yaml:"port" env:"PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"30s"`
}

// Addr is the listen address for http.Server.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", h.Port)
}

// StoreConfig picks the joke store backend. Both backends keep jokes in
// memory only; sqlite runs an in-memory SQLite database.
type StoreConfig struct {
	Driver string `yaml:"driver" env:"DRIVER" env-default:"memory"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

// MetricsConfig controls the Prometheus endpoint. Metrics are on unless
// Disabled is set, in YAML or as METRICS_DISABLED=true.
type MetricsConfig struct {
	Disabled bool   `yaml:"disabled" env:"DISABLED"`
	Path     string `yaml:"path" env:"PATH" env-default:"/metrics"`
}

// Enabled reports whether the middleware and scrape endpoint are mounted.
func (m MetricsConfig) Enabled() bool {
	return !m.Disabled
}

type HealthConfig struct {
	Endpoint string `yaml:"endpoint" env:"ENDPOINT" env-default:"/healthz"`
}

// Load reads the YAML file named by CONFIG_PATH, if set, and then the
// environment. Environment variables win over the file.
//
//	APP_LOG_LEVEL=debug HTTP_PORT=9000 STORE_DRIVER=sqlite ./server
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		// ReadConfig also applies env vars and defaults after the file
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalizes case-insensitive fields and checks every value.
func (c *Config) Validate() error {
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, c.HTTP.Port)
	}

	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("%w: got %q", ErrUnknownStoreDriver, c.Store.Driver)
	}

	c.App.LogFormat = strings.ToLower(strings.TrimSpace(c.App.LogFormat))
	switch c.App.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: got %q", ErrUnknownLogFormat, c.App.LogFormat)
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return fmt.Errorf("%w: got %q", ErrInvalidLogLevel, c.App.LogLevel)
	}

	return nil
}
