package repository

import (
	"context"

	"github.com/yukikurage/todo-simple-api/internal/models"
	"github.com/yukikurage/todo-simple-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// List returns one page of users ordered by ID, plus the total count
	List(ctx context.Context, params utils.PaginationParams) ([]models.User, int64, error)

	// Update saves an existing user
	Update(ctx context.Context, user *models.User) error

	// Delete removes a user; fails with ErrForeignKeyViolation while tasks reference it
	Delete(ctx context.Context, id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID with its owner preloaded
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// ListByUser returns one page of a user's tasks ordered by ID, plus the total count
	ListByUser(ctx context.Context, userID uint64, params utils.PaginationParams) ([]models.Task, int64, error)

	// CountByUser counts the tasks owned by a user
	CountByUser(ctx context.Context, userID uint64) (int64, error)

	// Update saves an existing task
	Update(ctx context.Context, task *models.Task) error

	// Delete removes a task
	Delete(ctx context.Context, id uint64) error
}

// Repositories hands out repositories bound to one database handle.
type Repositories interface {
	Users() UserRepository
	Tasks() TaskRepository
}

// TransactionManager runs work inside a single database transaction.
// If fn returns an error the transaction is rolled back, otherwise committed.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}
