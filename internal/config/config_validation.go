// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// MemoryCacheURL selects the process-local counter store.
const MemoryCacheURL = "memory"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// wrapping one of the package sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.AccessTokenSecret == "" || cfg.App.RefreshTokenSecret == "" {
		return fmt.Errorf("%w: access and refresh token secrets are required", ErrInvalidAppConfigs)
	}
	if cfg.App.AccessTokenSecret == cfg.App.RefreshTokenSecret {
		return fmt.Errorf("%w: access and refresh token secrets must differ", ErrInvalidAppConfigs)
	}
	if cfg.App.AccessTokenTTL <= 0 || cfg.App.RefreshTokenTTL <= 0 {
		return fmt.Errorf("%w: token lifetimes must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is required", ErrInvalidServerConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	url := cfg.Storage.Cache.URL
	if url == "" {
		return fmt.Errorf("%w: cache URL is required (use %q for the in-process store)", ErrInvalidStorageConfigs, MemoryCacheURL)
	}
	if url != MemoryCacheURL && !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return fmt.Errorf("%w: unsupported cache URL scheme", ErrInvalidStorageConfigs)
	}

	rl := cfg.RateLimit
	if rl.GlobalWindow <= 0 || rl.AuthWindow <= 0 || rl.APIWindow <= 0 ||
		rl.GlobalMax <= 0 || rl.AuthMax <= 0 || rl.APIMax <= 0 {
		return fmt.Errorf("%w: windows and caps must be positive", ErrInvalidRateLimitConfigs)
	}

	return nil
}
