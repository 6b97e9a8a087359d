package migrate

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmigrate/internal/store"
)

// Kind identifies which task collection a file holds.
type Kind int

const (
	KindActive Kind = iota
	KindCompleted
)

func (k Kind) String() string {
	switch k {
	case KindCompleted:
		return "completed"
	default:
		return "active"
	}
}

func (k Kind) label() string {
	switch k {
	case KindCompleted:
		return "已完成任务"
	default:
		return "活动任务"
	}
}

// Result summarises one backfill pass over a task file.
type Result struct {
	Path       string
	Kind       Kind
	Skipped    bool // file did not exist
	Total      int  // records in the file
	Backfilled int  // records that received a username
}

// Backfiller assigns an owner to task records that have none.
type Backfiller struct {
	Username string
	Reporter *Reporter
	Logger   *log.Logger
}

// Backfill sets the username field on every record in path that lacks one
// and writes the whole collection back. A missing file is skipped without
// error and is not created. Records that already carry the key, whatever its
// value, are left untouched.
func (b *Backfiller) Backfill(path string, kind Kind) (Result, error) {
	res := Result{Path: path, Kind: kind}
	logger := b.logger().With("file", path, "kind", kind)

	exists, err := store.Exists(path)
	if err != nil {
		return res, err
	}
	if !exists {
		logger.Debug("task file not found, skipping")
		res.Skipped = true
		return res, nil
	}

	rep := b.reporter()
	rep.StartFile(kind, path)

	tasks, err := store.LoadCollection(path)
	if err != nil {
		return res, err
	}
	logger.Debug("loaded task file", "records", len(tasks))

	for _, id := range tasks.IDs() {
		task := tasks[id]
		if task.SetDefault(store.UsernameField, b.Username) {
			res.Backfilled++
			rep.Backfilled(id, task.Title(untitled), b.Username)
		}
	}
	res.Total = len(tasks)

	if err := tasks.Save(path); err != nil {
		return res, fmt.Errorf("save %s tasks: %w", kind, err)
	}
	logger.Debug("wrote task file", "records", res.Total, "backfilled", res.Backfilled)

	rep.FileDone(kind, res.Total)
	return res, nil
}

func (b *Backfiller) reporter() *Reporter {
	if b.Reporter == nil {
		return NewReporter(nil)
	}
	return b.Reporter
}

func (b *Backfiller) logger() *log.Logger {
	if b.Logger == nil {
		return log.Default()
	}
	return b.Logger
}
