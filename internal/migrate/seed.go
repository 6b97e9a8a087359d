package migrate

import (
	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmigrate/internal/store"
)

// Bootstrap account. Placeholder credentials; the password is written in plaintext.
const (
	AccountName      = "chenzhan"
	AccountPassword  = "531020"
	AccountAvatar    = "😊"
	AccountCreatedAt = "2025-08-27T00:00:00"
)

// DefaultUsers returns the single-entry user database.
func DefaultUsers() store.Users {
	return store.Users{
		AccountName: {
			Password:  AccountPassword,
			Avatar:    AccountAvatar,
			CreatedAt: AccountCreatedAt,
			IsAdmin:   true,
		},
	}
}

// SeedUsers writes the default user database to path, creating the parent
// directory if needed and replacing any existing file.
func SeedUsers(path string, rep *Reporter, logger *log.Logger) error {
	if rep == nil {
		rep = NewReporter(nil)
	}
	if logger == nil {
		logger = log.Default()
	}

	users := DefaultUsers()
	if err := users.Save(path); err != nil {
		return err
	}
	logger.Debug("wrote users file", "file", path, "users", len(users))

	rep.UsersCreated(path)
	return nil
}
