package database

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/yukikurage/todo-simple-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the users and tasks tables. tasks.user_id gets a
// restricting foreign key to users.id, so a user with tasks cannot be deleted.
func Migrate(db *gorm.DB, logger *slog.Logger) error {
	logger.Info("running database migrations")
	if err := db.AutoMigrate(&models.User{}, &models.Task{}); err != nil {
		return errors.Wrap(err, "failed to run migrations")
	}
	logger.Info("database migrations completed")
	return nil
}
