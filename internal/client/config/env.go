package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays PETZY_* environment variables onto cfg.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}
}
