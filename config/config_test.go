package config

import (
	"log/slog"
	"testing"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadFrom(env(nil))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != "localhost:8080" || cfg.DBPath != "" || cfg.TLS || cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestOverrides(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{
		EnvAddr:     "0.0.0.0:9000",
		EnvDBPath:   "/tmp/organ",
		EnvTLS:      "true",
		EnvLogLevel: "debug",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != "0.0.0.0:9000" || cfg.DBPath != "/tmp/organ" || !cfg.TLS || cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestInvalidValues(t *testing.T) {
	if _, err := LoadFrom(env(map[string]string{EnvTLS: "maybe"})); err == nil {
		t.Fatal("expected an error for a non boolean TLS flag")
	}
	if _, err := LoadFrom(env(map[string]string{EnvLogLevel: "loud"})); err == nil {
		t.Fatal("expected an error for an unknown log level")
	}
}
