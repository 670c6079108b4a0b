// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv reads a StructuredConfig from the process environment. Variable
// names are the concatenated envPrefix chain plus the field tag, for example
// RATE_LIMIT_AUTH_MAX or STORAGE_DB_DATABASE_URI. Unset variables leave the
// field zero so later sources and defaults can fill it.
func parseEnv() (*StructuredConfig, error) {
	cfg, err := env.ParseAs[StructuredConfig]()
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return &cfg, nil
}
