package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/petzy/internal/flagx"
	"github.com/dmitrijs2005/petzy/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals
// are timex.Duration, so "3s" strings and integer nanoseconds both work.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	DataDir             string         `json:"data_dir"`
	GuardCooldown       timex.Duration `json:"guard_cooldown"`
	Timezone            string         `json:"timezone"`
	FeedTarget          int64          `json:"feed_target"`
	PlayTarget          int64          `json:"play_target"`
	FormulaSet          string         `json:"formula_set"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c/-config (or PETZY_CONFIG). Keys absent from the file keep their current
// value. Read or unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)
	setString(&cfg.DataDir, jc.DataDir)
	setDuration(&cfg.GuardCooldown, jc.GuardCooldown)
	setString(&cfg.Timezone, jc.Timezone)
	if jc.FeedTarget > 0 {
		cfg.FeedTarget = jc.FeedTarget
	}
	if jc.PlayTarget > 0 {
		cfg.PlayTarget = jc.PlayTarget
	}
	setString(&cfg.FormulaSet, jc.FormulaSet)
	setString(&cfg.LogLevel, jc.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
