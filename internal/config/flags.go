package config

import "flag"

// parseFlags defines and parses CLI flags, recording which were set explicitly.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskmigrate", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.BaseDir, "base-dir", cfg.BaseDir, "Directory containing the data directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Diagnostic log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Diagnostic log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in diagnostic logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	names := map[string]string{
		"base-dir":       "base_dir",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
	}
	fs.Visit(func(f *flag.Flag) {
		if field, ok := names[f.Name]; ok {
			cfg.Sources[field] = SourceFlag
		}
	})
	return nil
}
