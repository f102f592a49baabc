// Package config reads the process configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Environment variables understood by Load.
const (
	EnvAddr     = "ORGAN_ADDR"      // listen address, host:port or just host
	EnvDBPath   = "ORGAN_DB_PATH"   // LevelDB archive directory; empty disables the archive
	EnvTLS      = "ORGAN_TLS"       // serve over TLS with a self-signed certificate
	EnvLogLevel = "ORGAN_LOG_LEVEL" // debug, info, warn or error
)

// DefaultPort is used when the listen address carries no port.
const DefaultPort = 8080

type Config struct {
	Addr     string
	DBPath   string
	TLS      bool
	LogLevel slog.Level
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads the configuration through getenv.
func LoadFrom(getenv func(string) string) (Config, error) {
	cfg := Config{
		Addr:     getEnvDefault(getenv, EnvAddr, fmt.Sprintf("localhost:%d", DefaultPort)),
		DBPath:   getenv(EnvDBPath),
		LogLevel: slog.LevelInfo,
	}

	if v := getenv(EnvTLS); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvTLS, err)
		}
		cfg.TLS = b
	}

	if v := getenv(EnvLogLevel); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}
	return cfg, nil
}

func getEnvDefault(getenv func(string) string, k, def string) string {
	if v := getenv(k); v != "" {
		return v
	}
	return def
}
