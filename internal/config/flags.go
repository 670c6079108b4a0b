package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args (normally os.Args[1:]).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-r cache URL (redis://... or "memory")
//	-c/-config json file path with configs
//	-env environment name
//	-log-level minimum log level
//	-access-secret access token signing key
//	-refresh-secret refresh token signing key
//	-token-issuer token issuer name
//	-access-ttl access token lifetime (e.g., "15m")
//	-refresh-ttl refresh token lifetime (e.g., "168h")
//	-cors-origins comma separated allowed origins
//	-trust-proxy take client IP from X-Real-IP / X-Forwarded-For
//	-secure-cookies set the Secure attribute on auth cookies
//	-slow-threshold slow request alert threshold (e.g., "1s")
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN, cacheURL string
	var jsonConfigPath string
	var environment, logLevel string
	var accessSecret, refreshSecret, tokenIssuer string
	var accessTTL, refreshTTL time.Duration
	var corsOrigins string
	var trustProxy, secureCookies bool
	var slowThreshold time.Duration

	fs := flag.NewFlagSet("go-guardian", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&cacheURL, "r", "", "Cache URL (redis://... or memory)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&environment, "env", "", "Environment name")
	fs.StringVar(&logLevel, "log-level", "", "Minimum log level")
	fs.StringVar(&accessSecret, "access-secret", "", "Access token signing key")
	fs.StringVar(&refreshSecret, "refresh-secret", "", "Refresh token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&accessTTL, "access-ttl", 0, "Access token lifetime (e.g., 15m)")
	fs.DurationVar(&refreshTTL, "refresh-ttl", 0, "Refresh token lifetime (e.g., 168h)")
	fs.StringVar(&corsOrigins, "cors-origins", "", "Comma separated allowed origins")
	fs.BoolVar(&trustProxy, "trust-proxy", false, "Trust X-Real-IP / X-Forwarded-For")
	fs.BoolVar(&secureCookies, "secure-cookies", false, "Secure attribute on auth cookies")
	fs.DurationVar(&slowThreshold, "slow-threshold", 0, "Slow request alert threshold")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			Environment:        environment,
			LogLevel:           logLevel,
			AccessTokenSecret:  accessSecret,
			RefreshTokenSecret: refreshSecret,
			TokenIssuer:        tokenIssuer,
			AccessTokenTTL:     accessTTL,
			RefreshTokenTTL:    refreshTTL,
			SecureCookies:      secureCookies,
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
			CORSOrigins: splitList(corsOrigins),
			TrustProxy:  trustProxy,
		},
		Storage: Storage{
			DB:    DB{DSN: databaseDSN},
			Cache: Cache{URL: cacheURL},
		},
		Monitoring: Monitoring{
			SlowRequestThreshold: slowThreshold,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String returns a canonical host:port string for a NetAddress.
// An unset address renders as the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host means all interfaces. It validates the port range, checks IP
// correctness unless host is "localhost", and returns an error if the format
// or values are invalid.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
