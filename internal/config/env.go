package config

import "os"

// Environment variable names.
const (
	EnvBaseDir       = "TASKMIGRATE_BASE_DIR"
	EnvLogLevel      = "TASKMIGRATE_LOG_LEVEL"
	EnvLogFormat     = "TASKMIGRATE_LOG_FORMAT"
	EnvLogTimestamps = "TASKMIGRATE_LOG_TIMESTAMPS"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv(EnvBaseDir); v != "" {
		cfg.BaseDir = v
		cfg.Sources["base_dir"] = SourceEnv
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.Sources["log_level"] = SourceEnv
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		cfg.Sources["log_format"] = SourceEnv
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		cfg.Sources["log_timestamps"] = SourceEnv
	}
}
