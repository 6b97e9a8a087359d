// Package migrate assigns existing tasks to the bootstrap account and seeds
// the user database.
package migrate

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmigrate/internal/datadir"
)

// Options controls a migration run.
type Options struct {
	// BaseDir contains the data directory. Empty means the working directory.
	BaseDir string
	// Out receives operator-facing messages.
	Out io.Writer
	// Logger receives diagnostics. Nil uses the charmbracelet/log default.
	Logger *log.Logger
}

// Summary reports what a run did.
type Summary struct {
	Active    Result
	Completed Result
	UsersPath string
}

// Run backfills both task files and then seeds the user database. Steps run
// in order and stop at the first error; earlier steps are not rolled back.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	rep := NewReporter(opts.Out)
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	rep.Banner()
	logger.Debug("starting migration", "base_dir", opts.BaseDir, "account", AccountName)

	b := &Backfiller{Username: AccountName, Reporter: rep, Logger: logger}
	summary := &Summary{}

	steps := []struct {
		path string
		kind Kind
		out  *Result
	}{
		{datadir.TasksPath(opts.BaseDir), KindActive, &summary.Active},
		{datadir.CompletedPath(opts.BaseDir), KindCompleted, &summary.Completed},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		res, err := b.Backfill(step.path, step.kind)
		*step.out = res
		if err != nil {
			return summary, fmt.Errorf("backfill %s tasks: %w", step.kind, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	usersPath := datadir.UsersPath(opts.BaseDir)
	if err := SeedUsers(usersPath, rep, logger); err != nil {
		return summary, fmt.Errorf("seed users: %w", err)
	}
	summary.UsersPath = usersPath

	rep.Completed()
	logger.Debug("migration finished",
		"active", summary.Active.Total,
		"completed", summary.Completed.Total,
		"backfilled", summary.Active.Backfilled+summary.Completed.Backfilled,
	)
	return summary, nil
}
