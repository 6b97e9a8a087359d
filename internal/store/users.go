package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// User is a single account in the users file.
type User struct {
	Password  string `json:"password"`
	Avatar    string `json:"avatar"`
	CreatedAt string `json:"created_at"`
	IsAdmin   bool   `json:"is_admin"`
}

// Users maps usernames to accounts.
type Users map[string]User

// Save creates the parent directory if needed and writes the users file,
// overwriting any existing file without merging.
func (u Users) Save(path string) error {
	if u == nil {
		u = Users{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := writeJSON(path, u); err != nil {
		return fmt.Errorf("write users file: %w", err)
	}
	return nil
}
