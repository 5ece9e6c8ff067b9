package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort            = "10000"
	defaultEnv             = "production"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultPdftotext       = "pdftotext"
	defaultExtractTimeout  = 30 * time.Second
	defaultMaxUploadMB     = 20
	defaultCORSAllowOrigin = "*"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Port            string
	Env             string
	DBPath          string
	LogLevel        string
	LogFormat       string
	Pdftotext       string
	ExtractTimeout  time.Duration
	ExtractMaxPages int
	MaxUploadBytes  int64
	CORSAllowOrigin string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		Port:            envOr("PORT", defaultPort),
		Env:             envOr("APP_ENV", defaultEnv),
		DBPath:          os.Getenv("DB_PATH"),
		LogLevel:        envOr("LOG_LEVEL", defaultLogLevel),
		LogFormat:       envOr("LOG_FORMAT", defaultLogFormat),
		Pdftotext:       envOr("PDFTOTEXT_BIN", defaultPdftotext),
		ExtractTimeout:  envDuration("EXTRACT_TIMEOUT", defaultExtractTimeout),
		ExtractMaxPages: envInt("EXTRACT_MAX_PAGES", 0),
		MaxUploadBytes:  int64(envInt("MAX_UPLOAD_MB", defaultMaxUploadMB)) << 20,
		CORSAllowOrigin: envOr("CORS_ALLOW_ORIGIN", defaultCORSAllowOrigin),
	}

	if cfg.DBPath == "" {
		slog.Warn("DB_PATH is not set, using built-in material catalog")
	}

	return cfg
}

// IsDev reports whether the service runs in a development environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.Env) {
	case "dev", "development":
		return true
	}
	return false
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		slog.Warn("invalid integer setting, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		slog.Warn("invalid duration setting, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return v
}
