package repository

import (
	"context"

	"gorm.io/gorm"
)

// GormStore binds the GORM repositories to one database handle, which is
// either the root connection or an open transaction.
type GormStore struct {
	db *gorm.DB
}

// NewStore creates a GormStore over db.
func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Users returns the user repository bound to this store's handle.
func (s *GormStore) Users() UserRepository {
	return NewUserRepository(s.db)
}

// Tasks returns the task repository bound to this store's handle.
func (s *GormStore) Tasks() TaskRepository {
	return NewTaskRepository(s.db)
}

// Execute runs fn in a transaction. GORM rolls back when fn returns an error
// or panics.
func (s *GormStore) Execute(ctx context.Context, fn func(repos Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
