package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/todo-simple-api/internal/access"
	"github.com/yukikurage/todo-simple-api/internal/auth"
	"github.com/yukikurage/todo-simple-api/internal/models"
	"github.com/yukikurage/todo-simple-api/internal/repository"
	"github.com/yukikurage/todo-simple-api/internal/utils"
)

var ErrUsernameTaken = errors.New("username already exists")

// UserService handles user business logic. Every method that needs the caller's
// identity takes it explicitly; nil means the request is anonymous.
type UserService struct {
	repos  repository.Repositories
	tx     repository.TransactionManager
	hasher auth.PasswordHasher
}

// NewUserService creates a new UserService
func NewUserService(repos repository.Repositories, tx repository.TransactionManager, hasher auth.PasswordHasher) *UserService {
	return &UserService{
		repos:  repos,
		tx:     tx,
		hasher: hasher,
	}
}

// CreateUserInput represents the required information to register a user.
type CreateUserInput struct {
	Username string
	Password string
}

// UpdateUserInput carries the only mutable user field.
type UpdateUserInput struct {
	Password string
}

// FindByID returns a user to an administrator or to the user themselves.
func (s *UserService) FindByID(ctx context.Context, p *auth.Principal, id uint64) (*models.User, error) {
	return s.findByID(ctx, s.repos, p, id)
}

// FindAll lists users. Administrators only.
func (s *UserService) FindAll(ctx context.Context, p *auth.Principal, params utils.PaginationParams) ([]models.User, int64, error) {
	if !access.RequireAdmin(p).Allowed() {
		return nil, 0, ErrAccessDenied
	}

	users, total, err := s.repos.Users().List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].Roles = users[i].Roles.OrDefault()
	}
	return users, total, nil
}

// Create registers a new user. Anyone may call it; the new account always
// gets the USER role only, whatever the client asked for.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	username, err := normalizeUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Roles:        models.Roles{models.RoleUser},
	}

	err = s.tx.Execute(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Users().FindByUsername(ctx, username); err == nil {
			return ErrUsernameTaken
		} else if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to check username: %w", err)
		}

		if err := repos.Users().Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrUsernameTaken
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Update changes a user's password. Username and roles cannot be changed here.
// The caller is authorized before the new password is validated or hashed.
func (s *UserService) Update(ctx context.Context, p *auth.Principal, id uint64, input UpdateUserInput) error {
	return s.tx.Execute(ctx, func(repos repository.Repositories) error {
		user, err := s.findByID(ctx, repos, p, id)
		if err != nil {
			return err
		}

		if err := validatePassword(input.Password); err != nil {
			return err
		}
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user.PasswordHash = hash
		if err := repos.Users().Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return nil
	})
}

// Delete removes a user that owns no tasks.
func (s *UserService) Delete(ctx context.Context, p *auth.Principal, id uint64) error {
	return s.tx.Execute(ctx, func(repos repository.Repositories) error {
		if _, err := s.findByID(ctx, repos, p, id); err != nil {
			return err
		}

		count, err := repos.Tasks().CountByUser(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count tasks: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: user %d still owns %d task(s)", ErrIntegrityViolation, id, count)
		}

		if err := repos.Users().Delete(ctx, id); err != nil {
			switch {
			case errors.Is(err, repository.ErrForeignKeyViolation):
				return fmt.Errorf("%w: user %d is still referenced", ErrIntegrityViolation, id)
			case errors.Is(err, repository.ErrNotFound):
				return userNotFound(id)
			default:
				return fmt.Errorf("failed to delete user: %w", err)
			}
		}
		return nil
	})
}

// BootstrapAdmin makes sure an administrator account named username exists.
// An existing administrator is left untouched. A non-admin account holding the
// name was registered by someone else, so promoting it also replaces its
// password with the configured one.
func (s *UserService) BootstrapAdmin(ctx context.Context, username, password string) (*models.User, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	var admin *models.User
	err = s.tx.Execute(ctx, func(repos repository.Repositories) error {
		existing, err := repos.Users().FindByUsername(ctx, username)
		switch {
		case err == nil:
			roles := existing.Roles.OrDefault()
			if roles.Has(models.RoleAdmin) {
				admin = existing
				return nil
			}

			hash, err := s.hasher.Hash(password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			existing.Roles = append(roles, models.RoleAdmin)
			existing.PasswordHash = hash
			if err := repos.Users().Update(ctx, existing); err != nil {
				return fmt.Errorf("failed to grant admin role: %w", err)
			}
			admin = existing
			return nil
		case !errors.Is(err, repository.ErrNotFound):
			return fmt.Errorf("failed to check username: %w", err)
		}

		hash, err := s.hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		admin = &models.User{
			Username:     username,
			PasswordHash: hash,
			Roles:        models.Roles{models.RoleUser, models.RoleAdmin},
		}
		if err := repos.Users().Create(ctx, admin); err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return admin, nil
}

// findByID authorizes first and loads second, so a caller without access
// learns nothing about whether the id exists.
func (s *UserService) findByID(ctx context.Context, repos repository.Repositories, p *auth.Principal, id uint64) (*models.User, error) {
	if !access.CanAccessUser(p, id).Allowed() {
		return nil, ErrAccessDenied
	}

	user, err := repos.Users().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, userNotFound(id)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.Roles = user.Roles.OrDefault()
	return user, nil
}
