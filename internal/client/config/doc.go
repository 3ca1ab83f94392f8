// Package config loads runtime configuration for the Petzy CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c/-config or PETZY_CONFIG.
//  3. PETZY_* environment variables.
//  4. Command-line flags, which override earlier values.
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "data_dir": "petzy_data",
//	  "guard_cooldown": "700ms",
//	  "timezone": "Europe/Riga",
//	  "feed_target": 3,
//	  "play_target": 3,
//	  "formula_set": "display",
//	  "log_level": "warn"
//	}
package config
