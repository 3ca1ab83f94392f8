package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/petzy/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the backend server
//	-i int      online check interval in seconds
//	-d string   local data directory
//	-g int      action guard cooldown in milliseconds
//	-z string   timezone of day keys
//	-f int      daily feed target
//	-p int      daily play target
//	-x string   formula set ("display" or "action")
//	-l string   log level
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, so REPL arguments do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-d", "-g", "-z", "-f", "-p", "-x", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "local data directory")
	guardCooldown := fs.Int("g", int(cfg.GuardCooldown.Milliseconds()), "action guard cooldown (in milliseconds)")
	fs.StringVar(&cfg.Timezone, "z", cfg.Timezone, "timezone of day keys")
	fs.Int64Var(&cfg.FeedTarget, "f", cfg.FeedTarget, "daily feed target")
	fs.Int64Var(&cfg.PlayTarget, "p", cfg.PlayTarget, "daily play target")
	fs.StringVar(&cfg.FormulaSet, "x", cfg.FormulaSet, "stat formula set")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.GuardCooldown = time.Duration(*guardCooldown) * time.Millisecond
}
