package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/petzy/internal/client/guard"
	"github.com/dmitrijs2005/petzy/internal/stats"
)

// Config holds runtime settings for the Petzy CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DataDir: directory of the local SQLite database.
//   - GuardCooldown: duplicate-action suppression window.
//   - Timezone: IANA zone day keys are computed in ("Local" for the host zone).
//   - FeedTarget / PlayTarget: daily goals behind hunger, happiness and the streak.
//   - FormulaSet: stat formula variant, "display" or "action".
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerEndpointAddr  string        `env:"PETZY_SERVER_ADDR"`
	OnlineCheckInterval time.Duration `env:"PETZY_ONLINE_CHECK_INTERVAL"`
	DataDir             string        `env:"PETZY_DATA_DIR"`
	GuardCooldown       time.Duration `env:"PETZY_GUARD_COOLDOWN"`
	Timezone            string        `env:"PETZY_TIMEZONE"`
	FeedTarget          int64         `env:"PETZY_FEED_TARGET"`
	PlayTarget          int64         `env:"PETZY_PLAY_TARGET"`
	FormulaSet          string        `env:"PETZY_FORMULA_SET"`
	LogLevel            string        `env:"PETZY_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DataDir = "petzy_data"
	c.GuardCooldown = guard.DefaultCooldown
	c.Timezone = "Local"
	c.FeedTarget = stats.DefaultTargets().Feed
	c.PlayTarget = stats.DefaultTargets().Play
	c.FormulaSet = stats.FormulaSetDisplay
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) Targets() stats.Targets {
	return stats.Targets{Feed: c.FeedTarget, Play: c.PlayTarget}
}

func (c *Config) Formulas() (stats.Formulas, error) {
	return stats.ParseFormulaSet(c.FormulaSet)
}
