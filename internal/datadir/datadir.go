// Package datadir provides constants and utilities for the data directory structure.
package datadir

import "path/filepath"

const (
	// Dir is the name of the data directory under the base directory.
	Dir = "data"

	// TasksFile holds the active task collection.
	TasksFile = "tasks.json"

	// CompletedFile holds the completed task collection.
	CompletedFile = "completed_tasks.json"

	// UsersFile holds the user accounts.
	UsersFile = "users.json"
)

// TasksPath returns the full path to the active tasks file within a base directory.
func TasksPath(baseDir string) string {
	return joinPath(baseDir, TasksFile)
}

// CompletedPath returns the full path to the completed tasks file within a base directory.
func CompletedPath(baseDir string) string {
	return joinPath(baseDir, CompletedFile)
}

// UsersPath returns the full path to the users file within a base directory.
func UsersPath(baseDir string) string {
	return joinPath(baseDir, UsersFile)
}

// DirPath returns the full path to the data directory within a base directory.
func DirPath(baseDir string) string {
	if baseDir == "." || baseDir == "" {
		return Dir
	}
	return filepath.Join(baseDir, Dir)
}

func joinPath(baseDir, file string) string {
	return filepath.Join(DirPath(baseDir), file)
}
