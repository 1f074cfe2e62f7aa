// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel is the minimum level logged. Parsed from LOG_LEVEL
	// (debug, info, warn, error); defaults to info.
	LogLevel slog.Level

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to the Vite dev server on localhost and 127.0.0.1.
	CORSOrigins []string

	// CORSAllowAll admits every origin, overriding CORSOrigins.
	CORSAllowAll bool

	// GeocoderURL is the base URL of the Nominatim-compatible lookup service.
	GeocoderURL string

	// GeocoderUserAgent identifies this service to the geocoder, which
	// rejects anonymous clients.
	GeocoderUserAgent string

	// GeocoderTimeout bounds each individual lookup.
	GeocoderTimeout time.Duration

	// MaxBodyBytes caps request body size.
	MaxBodyBytes int64

	// AutoMigrate applies pending migrations at startup.
	AutoMigrate bool
}

// Defaults for optional variables.
const (
	DefaultPort              = "8080"
	DefaultCORSOrigins       = "http://localhost:5173,http://127.0.0.1:5173"
	DefaultGeocoderURL       = "https://nominatim.openstreetmap.org"
	DefaultGeocoderUserAgent = "eld-trips/1.0"
	DefaultGeocoderTimeout   = 10 * time.Second
	DefaultMaxBodyBytes      = 1 << 20
)

// Load reads configuration from environment variables and returns a Config.
// Returns an error naming every required variable that is not set and every
// variable that could not be parsed.
func Load() (Config, error) {
	p := &parser{}

	cfg := Config{
		Port:              getEnv("PORT", DefaultPort),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		LogLevel:          p.levelVar("LOG_LEVEL", slog.LevelInfo),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", DefaultCORSOrigins)),
		CORSAllowAll:      p.boolVar("CORS_ALLOW_ALL", false),
		GeocoderURL:       strings.TrimRight(getEnv("GEOCODER_URL", DefaultGeocoderURL), "/"),
		GeocoderUserAgent: getEnv("GEOCODER_USER_AGENT", DefaultGeocoderUserAgent),
		GeocoderTimeout:   p.durationVar("GEOCODER_TIMEOUT", DefaultGeocoderTimeout),
		MaxBodyBytes:      p.int64Var("MAX_BODY_BYTES", DefaultMaxBodyBytes),
		AutoMigrate:       p.boolVar("AUTO_MIGRATE", true),
	}

	var errs []error
	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("required environment variables not set: DATABASE_URL"))
	}
	errs = append(errs, p.errs...)

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}

// parser reads typed optional variables, collecting every parse failure
// instead of stopping at the first.
type parser struct {
	errs []error
}

func (p *parser) fail(key, v string, err error) {
	p.errs = append(p.errs, fmt.Errorf("invalid %s %q: %w", key, v, err))
}

func (p *parser) boolVar(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return b
}

func (p *parser) int64Var(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err == nil && n <= 0 {
		err = errors.New("must be positive")
	}
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return n
}

func (p *parser) durationVar(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err == nil && d <= 0 {
		err = errors.New("must be positive")
	}
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return d
}

func (p *parser) levelVar(key string, fallback slog.Level) slog.Level {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return l
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
