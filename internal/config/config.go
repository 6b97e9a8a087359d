package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/nibzard/taskmigrate/internal/logging"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	DefaultBaseDir   = "."
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultEnvFile   = ".env"
)

// ProjectConfigNames lists the config file names searched in the working directory.
var ProjectConfigNames = []string{"taskmigrate.toml", ".taskmigrate.toml"}

// Config holds the full configuration for taskmigrate.
type Config struct {
	// BaseDir is the directory containing the data directory.
	BaseDir string `toml:"base_dir"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`

	// ConfigFile is the project config file that was loaded, if any.
	ConfigFile string `toml:"-"`

	// Sources records where each field's value came from.
	Sources map[string]ConfigSource `toml:"-"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"base_dir",
		"log_level",
		"log_format",
		"log_timestamps",
	}
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. Project config file (taskmigrate.toml or .taskmigrate.toml in dir)
// 3. .env file in dir
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	return LoadDir(".", fs, args)
}

// LoadDir is Load with an explicit working directory for file lookups.
func LoadDir(dir string, fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Project config file
	if path := findProjectConfigFile(dir); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	// 3. .env file
	if err := loadEnvFile(filepath.Join(dir, DefaultEnvFile)); err != nil {
		return nil, err
	}

	// 4. Override from environment
	loadFromEnv(cfg)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.BaseDir = DefaultBaseDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false

	cfg.Sources = make(map[string]ConfigSource)
	for _, field := range configFields() {
		cfg.Sources[field] = SourceDefault
	}
}

// findProjectConfigFile looks for a config file in dir.
func findProjectConfigFile(dir string) string {
	for _, name := range ProjectConfigNames {
		path := filepath.Join(dir, name)
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			return path
		}
	}
	return ""
}

// loadConfigFile loads TOML config from the given file.
// Only keys present in the file override current values.
func loadConfigFile(cfg *Config, path string) error {
	var fileCfg Config
	meta, err := toml.DecodeFile(path, &fileCfg)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config keys: %v", undecoded)
	}

	if meta.IsDefined("base_dir") {
		cfg.BaseDir = fileCfg.BaseDir
		cfg.Sources["base_dir"] = SourceProjFile
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = fileCfg.LogLevel
		cfg.Sources["log_level"] = SourceProjFile
	}
	if meta.IsDefined("log_format") {
		cfg.LogFormat = fileCfg.LogFormat
		cfg.Sources["log_format"] = SourceProjFile
	}
	if meta.IsDefined("log_timestamps") {
		cfg.LogTimestamps = fileCfg.LogTimestamps
		cfg.Sources["log_timestamps"] = SourceProjFile
	}
	cfg.ConfigFile = path
	return nil
}

// loadEnvFile loads a .env file into the process environment if it exists.
// Variables already present in the environment are left alone.
func loadEnvFile(path string) error {
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// finalizeConfig validates values and expands paths.
func finalizeConfig(cfg *Config) error {
	cfg.BaseDir = strings.TrimSpace(cfg.BaseDir)
	if cfg.BaseDir == "" {
		cfg.BaseDir = DefaultBaseDir
	}
	cfg.BaseDir = expandPath(cfg.BaseDir)

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if !logging.ValidLevel(cfg.LogLevel) {
		return fmt.Errorf("invalid log level %q (debug|info|warn|error)", cfg.LogLevel)
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	if !logging.ValidFormat(cfg.LogFormat) {
		return fmt.Errorf("invalid log format %q (text|json|logfmt)", cfg.LogFormat)
	}
	return nil
}

// expandPath expands a leading ~ and environment variables in paths.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
