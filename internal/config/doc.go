// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. Project config file (taskmigrate.toml or .taskmigrate.toml in the working directory)
// 3. .env file in the working directory (never overrides variables already set)
// 4. Environment variables (TASKMIGRATE_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
// With nothing set, the migration runs against ./data exactly as a bare
// invocation would.
package config
