package config

import "time"

// Default values applied to zero fields after all sources are merged.
const (
	DefaultEnvironment      = "development"
	DefaultVersion          = "1.0.0"
	DefaultLogLevel         = "info"
	DefaultTokenIssuer      = "go-guardian"
	DefaultAccessTokenTTL   = 15 * time.Minute
	DefaultRefreshTokenTTL  = 7 * 24 * time.Hour
	DefaultPasswordHashCost = 10

	DefaultHTTPAddress     = ":8080"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second

	DefaultGlobalWindow = 15 * time.Minute
	DefaultGlobalMax    = 100
	DefaultAuthWindow   = 15 * time.Minute
	DefaultAuthMax      = 5
	DefaultAPIWindow    = time.Minute
	DefaultAPIMax       = 30

	DefaultSlowRequestThreshold = time.Second
	DefaultMetricsTTL           = 24 * time.Hour
	DefaultMaxAlerts            = 1000
	DefaultHealthCheckInterval  = 30 * time.Second
)

// DefaultCORSOrigins allows any origin.
var DefaultCORSOrigins = []string{"*"}

func (cfg *StructuredConfig) applyDefaults() {
	setDefault(&cfg.App.Environment, DefaultEnvironment)
	setDefault(&cfg.App.Version, DefaultVersion)
	setDefault(&cfg.App.LogLevel, DefaultLogLevel)
	setDefault(&cfg.App.TokenIssuer, DefaultTokenIssuer)
	setDefault(&cfg.App.AccessTokenTTL, DefaultAccessTokenTTL)
	setDefault(&cfg.App.RefreshTokenTTL, DefaultRefreshTokenTTL)
	setDefault(&cfg.App.PasswordHashCost, DefaultPasswordHashCost)

	setDefault(&cfg.Server.HTTPAddress, DefaultHTTPAddress)
	setDefault(&cfg.Server.ReadTimeout, DefaultReadTimeout)
	setDefault(&cfg.Server.WriteTimeout, DefaultWriteTimeout)
	setDefault(&cfg.Server.IdleTimeout, DefaultIdleTimeout)
	setDefault(&cfg.Server.ShutdownTimeout, DefaultShutdownTimeout)
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = append([]string(nil), DefaultCORSOrigins...)
	}

	setDefault(&cfg.RateLimit.GlobalWindow, DefaultGlobalWindow)
	setDefault(&cfg.RateLimit.GlobalMax, DefaultGlobalMax)
	setDefault(&cfg.RateLimit.AuthWindow, DefaultAuthWindow)
	setDefault(&cfg.RateLimit.AuthMax, DefaultAuthMax)
	setDefault(&cfg.RateLimit.APIWindow, DefaultAPIWindow)
	setDefault(&cfg.RateLimit.APIMax, DefaultAPIMax)

	setDefault(&cfg.Monitoring.SlowRequestThreshold, DefaultSlowRequestThreshold)
	setDefault(&cfg.Monitoring.MetricsTTL, DefaultMetricsTTL)
	setDefault(&cfg.Monitoring.MaxAlerts, DefaultMaxAlerts)
	setDefault(&cfg.Monitoring.HealthCheckInterval, DefaultHealthCheckInterval)
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
