// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-guardian service. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token secrets,
	// token lifetimes, and the reported environment.
	App App `envPrefix:"APP_"`

	// Server holds network address, timeout and cross-origin settings.
	Server Server `envPrefix:"SERVER_"`

	// Storage holds configuration for the user database and the shared
	// counter store.
	Storage Storage `envPrefix:"STORAGE_"`

	// RateLimit holds the windows and caps of the three limiter policies.
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`

	// Monitoring holds the thresholds of the performance and metrics
	// interceptors.
	Monitoring Monitoring `envPrefix:"MONITORING_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control security,
// token lifecycle, and versioning.
type App struct {
	// Environment is reported by the health endpoint
	// ("development", "production", "test").
	// Env: APP_ENVIRONMENT
	Environment string `env:"ENVIRONMENT"`

	// Version is the semantic version string of the running application.
	// Exposed via the root endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is the minimum zerolog level ("debug", "info", "warn", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// AccessTokenSecret signs and verifies access tokens.
	// Must be kept confidential.
	// Env: APP_ACCESS_TOKEN_SECRET
	AccessTokenSecret string `env:"ACCESS_TOKEN_SECRET"`

	// RefreshTokenSecret signs and verifies refresh tokens. Must differ from
	// AccessTokenSecret.
	// Env: APP_REFRESH_TOKEN_SECRET
	RefreshTokenSecret string `env:"REFRESH_TOKEN_SECRET"`

	// TokenIssuer is the "iss" claim embedded in and required of every token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// AccessTokenTTL is the lifetime of access tokens (default 15m).
	// Env: APP_ACCESS_TOKEN_TTL
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL"`

	// RefreshTokenTTL is the lifetime of refresh tokens (default 168h).
	// Env: APP_REFRESH_TOKEN_TTL
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL"`

	// PasswordHashCost is the bcrypt cost used for new password hashes.
	// Env: APP_PASSWORD_HASH_COST
	PasswordHashCost int `env:"PASSWORD_HASH_COST"`

	// SecureCookies sets the Secure attribute on the accessToken cookie.
	// Env: APP_SECURE_COOKIES
	SecureCookies bool `env:"SECURE_COOKIES"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// Env: SERVER_READ_TIMEOUT
	ReadTimeout time.Duration `env:"READ_TIMEOUT"`

	// Env: SERVER_WRITE_TIMEOUT
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT"`

	// Env: SERVER_IDLE_TIMEOUT
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown after a termination signal.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// CORSOrigins lists the origins allowed to make credentialed
	// cross-origin requests. "*" allows any origin.
	// Env: SERVER_CORS_ORIGINS (comma separated)
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	// TrustProxy makes the client address come from X-Real-IP /
	// X-Forwarded-For instead of the socket peer.
	// Env: SERVER_TRUST_PROXY
	TrustProxy bool `env:"TRUST_PROXY"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Cache holds the shared counter store settings.
	Cache Cache `envPrefix:"CACHE_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the driver by scheme: "postgres://" or "postgresql://" use
	// pgx, "sqlite://", "file:" and ":memory:" use sqlite3.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Cache holds connection settings for the shared counter store.
type Cache struct {
	// URL is a redis:// or rediss:// URL, or the literal "memory" for the
	// process-local store (tests and single-instance development only).
	// Env: STORAGE_CACHE_URL
	URL string `env:"URL"`
}

// RateLimit holds the three fixed-window policies.
type RateLimit struct {
	GlobalWindow time.Duration `env:"GLOBAL_WINDOW"`
	GlobalMax    int64         `env:"GLOBAL_MAX"`
	AuthWindow   time.Duration `env:"AUTH_WINDOW"`
	AuthMax      int64         `env:"AUTH_MAX"`
	APIWindow    time.Duration `env:"API_WINDOW"`
	APIMax       int64         `env:"API_MAX"`
}

// Monitoring holds the interceptor thresholds.
type Monitoring struct {
	// SlowRequestThreshold raises a slow-request alert when exceeded.
	// Env: MONITORING_SLOW_REQUEST_THRESHOLD
	SlowRequestThreshold time.Duration `env:"SLOW_REQUEST_THRESHOLD"`

	// MetricsTTL is the expiry refreshed on every endpoint metrics write.
	// Env: MONITORING_METRICS_TTL
	MetricsTTL time.Duration `env:"METRICS_TTL"`

	// MaxAlerts bounds the in-memory alert log; the oldest alert is dropped.
	// Env: MONITORING_MAX_ALERTS
	MaxAlerts int `env:"MAX_ALERTS"`

	// HealthCheckInterval is the period of the background dependency
	// monitor. A negative value disables it.
	// Env: MONITORING_HEALTH_CHECK_INTERVAL
	HealthCheckInterval time.Duration `env:"HEALTH_CHECK_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Zero fields are then filled with defaults. Returns a fully populated
// *StructuredConfig or an error if any source fails to load or the final
// config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
