// Package config builds the application configuration once at startup from
// environment variables (after main has loaded .env) so nothing else reads
// the process environment ad hoc.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/tlv300/whois-lookup/pkg/whois"
)

// Config aggregates application configuration values.
type Config struct {
	Server   ServerConfig
	Whois    WhoisConfig
	Database DatabaseConfig
	Frontend FrontendConfig
	Logging  LoggingConfig
}

// ServerConfig governs HTTP server behaviour.
type ServerConfig struct {
	Port int
}

// WhoisConfig describes the upstream provider: endpoint, credential, and the
// per-request deadline.
type WhoisConfig struct {
	APIKey  string
	APIURL  string
	Timeout time.Duration
}

// DatabaseConfig points at the lookup log database. An empty URL disables
// logging entirely.
type DatabaseConfig struct {
	URL string
}

// FrontendConfig locates the prebuilt SPA bundle.
type FrontendConfig struct {
	DistDir string
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level  string
	Format string // text|json
}

const (
	defaultPort          = 8080
	defaultWhoisTimeout  = 20 * time.Second
	defaultDistDir       = "frontend/dist"
	defaultLoggingLevel  = "info"
	defaultLoggingFormat = "text"
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Whois: WhoisConfig{
			APIKey:  os.Getenv("WHOIS_API_KEY"),
			APIURL:  valueOrDefault("WHOIS_API_URL", whois.DefaultAPIURL),
			Timeout: defaultWhoisTimeout,
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Frontend: FrontendConfig{
			DistDir: valueOrDefault("FRONTEND_DIST_DIR", defaultDistDir),
		},
		Logging: LoggingConfig{
			Level:  valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format: valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
		},
	}

	port, err := parsePort("PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.Server.Port = port

	if v := os.Getenv("WHOIS_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WHOIS_TIMEOUT: %w", err)
		}
		cfg.Whois.Timeout = d
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	port, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("port %d is out of range", port)
	}
	return port, nil
}
