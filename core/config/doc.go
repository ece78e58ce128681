// Package config provides configuration management for the Placement Manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL connection details and startup retry policy
//   - Log: Logging level and format
//   - Availability: cache TTLs for the availability queries
//   - Expiration: holding period and sweep interval
//
// Defaults come from 'default' struct tags on the partial config structs,
// bound recursively via reflection so every key is also overridable from the
// environment (e.g. EXPIRATION_HOLDING_DAYS, AVAILABILITY_CACHE_TTL).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
