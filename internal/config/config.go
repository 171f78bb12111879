// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads BrushWhacker settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// knownWeakSecrets contains example secrets that must never reach production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"BW_DB_PATH" envDefault:"./data/brushwhacker.db"`
	SessionSecret string `env:"BW_SESSION_SECRET,required"`
	ServerHost    string `env:"BW_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"BW_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"BW_ENV" envDefault:"development"`
	BaseURL       string `env:"BW_BASE_URL" envDefault:"http://localhost:8080"`

	LogLevel       string `env:"BW_LOG_LEVEL" envDefault:"info"`
	LogFile        string `env:"BW_LOG_FILE"`                             // Optional rotating log file
	LogMaxSizeMB   int    `env:"BW_LOG_MAX_SIZE_MB" envDefault:"50"`      // Rotate after this many megabytes
	LogMaxBackups  int    `env:"BW_LOG_MAX_BACKUPS" envDefault:"5"`       // Rotated files kept
	EventRetention int    `env:"BW_EVENT_RETENTION_DAYS" envDefault:"90"` // Audit events older than this are pruned

	UploadsDir  string `env:"BW_UPLOADS_DIR" envDefault:"./uploads"`
	CatalogPath string `env:"BW_CATALOG_PATH"` // Optional YAML overriding the embedded marketing catalog

	// Cache configuration
	RedisURL     string        `env:"BW_REDIS_URL"`                         // Optional Redis URL for shared list caching
	CachePrefix  string        `env:"BW_CACHE_PREFIX" envDefault:"bw:"`     // Redis key prefix
	ListCacheTTL time.Duration `env:"BW_LIST_CACHE_TTL" envDefault:"30s"`   // Listing cache lifetime
	CacheMaxSize int           `env:"BW_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// GeoIP configuration
	GeoIPDBPath string `env:"BW_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Public API
	CORSOrigins    []string      `env:"BW_CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	QuoteRateLimit int           `env:"BW_QUOTE_RATE_LIMIT" envDefault:"5"` // Quote submissions per IP per hour
	RequestTimeout time.Duration `env:"BW_REQUEST_TIMEOUT" envDefault:"30s"`

	// Tracing
	Tracing bool `env:"BW_TRACING" envDefault:"false"` // Export request spans to stdout

	// Seeding configuration
	DoSeed        bool   `env:"BW_DO_SEED" envDefault:"false"` // Seed sample content on startup
	AdminEmail    string `env:"BW_ADMIN_EMAIL"`                // First super admin, created when no users exist
	AdminPassword string `env:"BW_ADMIN_PASSWORD"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// GeoIPEnabled returns true if a GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// SeedAdmin reports whether a bootstrap super admin is configured.
func (c Config) SeedAdmin() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load reads an optional .env file, parses environment variables and
// validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("BW_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("BW_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("BW_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("BW_SERVER_PORT %d is out of range", cfg.ServerPort)
	}
	if cfg.QuoteRateLimit < 1 {
		return nil, fmt.Errorf("BW_QUOTE_RATE_LIMIT must be positive")
	}
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return nil, fmt.Errorf("BW_ADMIN_EMAIL and BW_ADMIN_PASSWORD must be set together")
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
