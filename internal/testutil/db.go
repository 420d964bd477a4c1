// Package testutil provides in-memory database fixtures for tests.
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-simple-api/internal/database"
	"github.com/yukikurage/todo-simple-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewDB opens a migrated in-memory SQLite database with foreign keys enforced.
// The pool holds a single connection so every query sees the same database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.Migrate(db, DiscardLogger()))

	return db
}

// CreateUser inserts a user whose password is the given plaintext.
func CreateUser(t *testing.T, db *gorm.DB, username, password string, roles ...models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	if len(roles) == 0 {
		roles = []models.Role{models.RoleUser}
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Roles:        models.Roles(roles),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTask inserts a task owned by userID.
func CreateTask(t *testing.T, db *gorm.DB, description string, userID uint64) *models.Task {
	t.Helper()

	task := &models.Task{
		Description: description,
		UserID:      userID,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}
