package repository

import (
	"context"

	"github.com/yukikurage/todo-simple-api/internal/database"
	"github.com/yukikurage/todo-simple-api/internal/models"
	"github.com/yukikurage/todo-simple-api/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return classify(r.db.WithContext(ctx).Create(user).Error)
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, classify(err)
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, classify(err)
	}
	return &user, nil
}

// List returns one page of users ordered by ID
func (r *GormUserRepository) List(ctx context.Context, params utils.PaginationParams) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, classify(err)
	}

	users := []models.User{}
	if err := query.Order("id ASC").Scopes(database.Paginate(params)).Find(&users).Error; err != nil {
		return nil, 0, classify(err)
	}
	return users, total, nil
}

// Update updates a user
func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	return classify(r.db.WithContext(ctx).Save(user).Error)
}

// Delete hard deletes a user
func (r *GormUserRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
