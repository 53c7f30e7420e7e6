package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvOutDir      = "RIVER_OUTDIR"
	EnvCmap        = "RIVER_CMAP"
	EnvLogLevel    = "RIVER_LOG_LEVEL"
	EnvEnvironment = "RIVER_ENV"
	EnvDataDir     = "RIVER_DATA"
)

// LoadDotEnv reads .env files into the process environment. Missing files are
// ignored and variables that are already set are kept.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// ApplyEnv overlays the RIVER_* environment variables onto c.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvOutDir); v != "" {
		c.OutDir = v
	}
	if v := os.Getenv(EnvCmap); v != "" {
		c.Cmap = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvEnvironment); v != "" {
		c.Environment = strings.ToLower(v)
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
}

// Resolve builds the effective configuration: defaults, then the YAML file at
// path when path is non-empty, then the environment. Command line flags are
// applied by the caller on top.
func Resolve(path string) (*Config, error) {
	LoadDotEnv()
	cfg := DefaultConfig()
	if path != "" {
		if err := LoadInto(path, cfg); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}
