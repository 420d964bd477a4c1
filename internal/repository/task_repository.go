package repository

import (
	"context"

	"github.com/yukikurage/todo-simple-api/internal/database"
	"github.com/yukikurage/todo-simple-api/internal/models"
	"github.com/yukikurage/todo-simple-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return classify(r.db.WithContext(ctx).Omit("User").Create(task).Error)
}

// FindByID finds a task by ID with its owner preloaded
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Preload("User").First(&task, id).Error; err != nil {
		return nil, classify(err)
	}
	return &task, nil
}

// ListByUser returns one page of a user's tasks ordered by ID, owners preloaded
func (r *GormTaskRepository) ListByUser(ctx context.Context, userID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{}).Where("user_id = ?", userID).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, classify(err)
	}

	tasks := []models.Task{}
	if err := query.Preload("User").Order("id ASC").Scopes(database.Paginate(params)).Find(&tasks).Error; err != nil {
		return nil, 0, classify(err)
	}
	return tasks, total, nil
}

// CountByUser counts the tasks owned by a user
func (r *GormTaskRepository) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).Where("user_id = ?", userID).Count(&count).Error
	return count, classify(err)
}

// Update updates a task's description; owner and ID are never rewritten here.
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return classify(r.db.WithContext(ctx).Model(task).Select("Description", "UpdatedAt").Updates(task).Error)
}

// Delete hard deletes a task
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.Task{}, id)
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
