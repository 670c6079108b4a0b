package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the optional JSON config
// file. Durations accept Go duration strings ("15m") or nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		Environment        string   `json:"environment"`
		Version            string   `json:"version"`
		LogLevel           string   `json:"log_level"`
		AccessTokenSecret  string   `json:"access_token_secret"`
		RefreshTokenSecret string   `json:"refresh_token_secret"`
		TokenIssuer        string   `json:"token_issuer"`
		AccessTokenTTL     Duration `json:"access_token_ttl"`
		RefreshTokenTTL    Duration `json:"refresh_token_ttl"`
		PasswordHashCost   int      `json:"password_hash_cost"`
		SecureCookies      bool     `json:"secure_cookies"`
	} `json:"app,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		ReadTimeout     Duration `json:"read_timeout"`
		WriteTimeout    Duration `json:"write_timeout"`
		IdleTimeout     Duration `json:"idle_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
		CORSOrigins     []string `json:"cors_origins"`
		TrustProxy      bool     `json:"trust_proxy"`
	} `json:"server,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Cache struct {
			URL string `json:"url"`
		} `json:"cache,omitempty"`
	} `json:"storage,omitempty"`

	RateLimit struct {
		GlobalWindow Duration `json:"global_window"`
		GlobalMax    int64    `json:"global_max"`
		AuthWindow   Duration `json:"auth_window"`
		AuthMax      int64    `json:"auth_max"`
		APIWindow    Duration `json:"api_window"`
		APIMax       int64    `json:"api_max"`
	} `json:"rate_limit,omitempty"`

	Monitoring struct {
		SlowRequestThreshold Duration `json:"slow_request_threshold"`
		MetricsTTL           Duration `json:"metrics_ttl"`
		MaxAlerts            int      `json:"max_alerts"`
		HealthCheckInterval  Duration `json:"health_check_interval"`
	} `json:"monitoring,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	app, srv, rl, mon := jsonCfg.App, jsonCfg.Server, jsonCfg.RateLimit, jsonCfg.Monitoring
	cfg := &StructuredConfig{
		App: App{
			Environment:        app.Environment,
			Version:            app.Version,
			LogLevel:           app.LogLevel,
			AccessTokenSecret:  app.AccessTokenSecret,
			RefreshTokenSecret: app.RefreshTokenSecret,
			TokenIssuer:        app.TokenIssuer,
			AccessTokenTTL:     time.Duration(app.AccessTokenTTL),
			RefreshTokenTTL:    time.Duration(app.RefreshTokenTTL),
			PasswordHashCost:   app.PasswordHashCost,
			SecureCookies:      app.SecureCookies,
		},
		Server: Server{
			HTTPAddress:     srv.HTTPAddress,
			ReadTimeout:     time.Duration(srv.ReadTimeout),
			WriteTimeout:    time.Duration(srv.WriteTimeout),
			IdleTimeout:     time.Duration(srv.IdleTimeout),
			ShutdownTimeout: time.Duration(srv.ShutdownTimeout),
			CORSOrigins:     srv.CORSOrigins,
			TrustProxy:      srv.TrustProxy,
		},
		Storage: Storage{
			DB:    DB{DSN: jsonCfg.Storage.DB.DSN},
			Cache: Cache{URL: jsonCfg.Storage.Cache.URL},
		},
		RateLimit: RateLimit{
			GlobalWindow: time.Duration(rl.GlobalWindow),
			GlobalMax:    rl.GlobalMax,
			AuthWindow:   time.Duration(rl.AuthWindow),
			AuthMax:      rl.AuthMax,
			APIWindow:    time.Duration(rl.APIWindow),
			APIMax:       rl.APIMax,
		},
		Monitoring: Monitoring{
			SlowRequestThreshold: time.Duration(mon.SlowRequestThreshold),
			MetricsTTL:           time.Duration(mon.MetricsTTL),
			MaxAlerts:            mon.MaxAlerts,
			HealthCheckInterval:  time.Duration(mon.HealthCheckInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
