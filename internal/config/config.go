// Package config loads fan-missions configuration from defaults, an optional
// TOML file, an optional .env file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrMissingDatabaseURL is returned when no database URL is configured.
var ErrMissingDatabaseURL = errors.New("missing database URL (set DATABASE_URL or database.url)")

// Environment variables that override file settings.
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvAddr        = "FAN_MISSIONS_ADDR"
	EnvCORSOrigin  = "FAN_MISSIONS_CORS_ORIGIN"
	EnvLogLevel    = "FAN_MISSIONS_LOG_LEVEL"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// DatabaseConfig contains PostgreSQL connection settings.
type DatabaseConfig struct {
	URL string `toml:"url"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
	// CORSOrigin is the single origin allowed to call the API from a browser.
	CORSOrigin string `toml:"cors_origin"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:       "127.0.0.1:8000",
			CORSOrigin: "http://localhost:5173",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration. path names a TOML file and envFile a
// dotenv file; either may be empty, and a missing envFile is ignored.
// Variables already present in the environment win over envFile entries.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvCORSOrigin); v != "" {
		c.Server.CORSOrigin = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate reports configuration that cannot be used to connect.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return ErrMissingDatabaseURL
	}
	return nil
}
