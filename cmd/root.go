// Package cmd implements the CLI command structure for taskmigrate.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/nibzard/taskmigrate/internal/config"
	"github.com/nibzard/taskmigrate/internal/datadir"
	"github.com/nibzard/taskmigrate/internal/logging"
	"github.com/nibzard/taskmigrate/internal/migrate"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ErrMigrationFailed marks errors whose failure message was already printed.
var ErrMigrationFailed = errors.New("migration failed")

// Run executes the taskmigrate CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("taskmigrate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	remaining := fs.Args()
	if len(remaining) > 0 {
		switch remaining[0] {
		case "help":
			printUsage(fs, stdout)
			return nil
		case "version":
			return versionCommand(stdout)
		default:
			printUsage(fs, stderr)
			return fmt.Errorf("unknown command: %s", remaining[0])
		}
	}

	return migrateCommand(ctx, cfg, stdout, stderr)
}

// migrateCommand runs the migration and prints the failure message on error.
func migrateCommand(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	logger := logging.NewFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps)
	if cfg.ConfigFile != "" {
		logger.Debug("loaded config file", "path", cfg.ConfigFile)
	}
	for _, field := range sortedKeys(cfg.Sources) {
		logger.Debug("config value", "field", field, "source", cfg.Sources[field])
	}

	_, err := migrate.Run(ctx, migrate.Options{
		BaseDir: cfg.BaseDir,
		Out:     stdout,
		Logger:  logger,
	})
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		migrate.NewReporter(stdout).Failed(err)
		logger.Debug("migration failed", "err", err, "data_dir", datadir.DirPath(cfg.BaseDir))
		return fmt.Errorf("%w: %w", ErrMigrationFailed, err)
	}
	return nil
}

func sortedKeys(m map[string]config.ConfigSource) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// versionCommand prints the version.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "taskmigrate version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "taskmigrate - assign existing tasks to the default account and seed the user database")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskmigrate [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Reads and rewrites, under the base directory:")
	fmt.Fprintf(w, "  %s/%s\n", datadir.Dir, datadir.TasksFile)
	fmt.Fprintf(w, "  %s/%s\n", datadir.Dir, datadir.CompletedFile)
	fmt.Fprintf(w, "Creates or replaces %s/%s.\n", datadir.Dir, datadir.UsersFile)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  %s, %s, %s, %s\n", config.EnvBaseDir, config.EnvLogLevel, config.EnvLogFormat, config.EnvLogTimestamps)
}
