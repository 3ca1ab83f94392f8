package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays PETZY_* environment variables. Unset variables keep the
// current value; an unparsable one panics like a bad config file does.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}
}
