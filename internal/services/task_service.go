package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/todo-simple-api/internal/access"
	"github.com/yukikurage/todo-simple-api/internal/auth"
	"github.com/yukikurage/todo-simple-api/internal/constants"
	"github.com/yukikurage/todo-simple-api/internal/models"
	"github.com/yukikurage/todo-simple-api/internal/repository"
	"github.com/yukikurage/todo-simple-api/internal/utils"
)

var (
	ErrSuggestionTextRequired = fmt.Errorf("%w: text is required", ErrInvalidInput)
	ErrSuggestionTextTooLong  = fmt.Errorf("%w: text must be at most %d characters", ErrInvalidInput, constants.MaxSuggestionText)
)

// TaskService handles task business logic
type TaskService struct {
	repos     repository.Repositories
	tx        repository.TransactionManager
	users     *UserService
	assistant TaskSuggester
}

// NewTaskService creates a new TaskService. assistant may be nil, in which
// case SuggestTasks reports ErrAssistantUnavailable.
func NewTaskService(repos repository.Repositories, tx repository.TransactionManager, users *UserService, assistant TaskSuggester) *TaskService {
	return &TaskService{
		repos:     repos,
		tx:        tx,
		users:     users,
		assistant: assistant,
	}
}

// CreateTaskInput represents input for creating a task. UserID is optional;
// without it the task belongs to the caller.
type CreateTaskInput struct {
	Description string
	UserID      *uint64
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Description string
}

// FindByID returns a task with its owner to an administrator or the owner.
func (s *TaskService) FindByID(ctx context.Context, p *auth.Principal, id uint64) (*models.Task, error) {
	return s.findByID(ctx, s.repos, p, id)
}

// FindAllForPrincipal lists the caller's own tasks.
func (s *TaskService) FindAllForPrincipal(ctx context.Context, p *auth.Principal, params utils.PaginationParams) ([]models.Task, int64, error) {
	if !access.RequireAuthenticated(p).Allowed() {
		return nil, 0, ErrAccessDenied
	}
	return s.listByUser(ctx, p.ID, params)
}

// FindAllForUser lists the tasks of userID. The target user is resolved first,
// so only administrators and the user themselves get past it.
func (s *TaskService) FindAllForUser(ctx context.Context, p *auth.Principal, userID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	if _, err := s.users.FindByID(ctx, p, userID); err != nil {
		return nil, 0, err
	}
	return s.listByUser(ctx, userID, params)
}

// Create stores a new task for the caller or for a user the caller may access.
func (s *TaskService) Create(ctx context.Context, p *auth.Principal, input CreateTaskInput) (*models.Task, error) {
	if !access.RequireAuthenticated(p).Allowed() {
		return nil, ErrAccessDenied
	}

	description, err := normalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}

	var task *models.Task
	err = s.tx.Execute(ctx, func(repos repository.Repositories) error {
		ownerID := p.ID
		if input.UserID != nil {
			ownerID = *input.UserID
		}

		owner, err := s.users.findByID(ctx, repos, p, ownerID)
		if err != nil {
			return err
		}

		task = &models.Task{
			Description: description,
			UserID:      owner.ID,
		}
		if err := repos.Tasks().Create(ctx, task); err != nil {
			if errors.Is(err, repository.ErrForeignKeyViolation) {
				return userNotFound(owner.ID)
			}
			return fmt.Errorf("failed to create task: %w", err)
		}
		task.User = *owner
		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// Update replaces the description of a task. Ownership never changes.
func (s *TaskService) Update(ctx context.Context, p *auth.Principal, id uint64, input UpdateTaskInput) error {
	description, err := normalizeDescription(input.Description)
	if err != nil {
		return err
	}

	return s.tx.Execute(ctx, func(repos repository.Repositories) error {
		task, err := s.findByID(ctx, repos, p, id)
		if err != nil {
			return err
		}

		task.Description = description
		if err := repos.Tasks().Update(ctx, task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		return nil
	})
}

// Delete removes a task
func (s *TaskService) Delete(ctx context.Context, p *auth.Principal, id uint64) error {
	return s.tx.Execute(ctx, func(repos repository.Repositories) error {
		if _, err := s.findByID(ctx, repos, p, id); err != nil {
			return err
		}

		if err := repos.Tasks().Delete(ctx, id); err != nil {
			switch {
			case errors.Is(err, repository.ErrForeignKeyViolation):
				return fmt.Errorf("%w: task %d is still referenced", ErrIntegrityViolation, id)
			case errors.Is(err, repository.ErrNotFound):
				return taskNotFound(id)
			default:
				return fmt.Errorf("failed to delete task: %w", err)
			}
		}
		return nil
	})
}

// SuggestTasks asks the assistant for task descriptions found in text.
// Nothing is stored; the caller decides which suggestions to create.
func (s *TaskService) SuggestTasks(ctx context.Context, p *auth.Principal, text string) ([]string, error) {
	if !access.RequireAuthenticated(p).Allowed() {
		return nil, ErrAccessDenied
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrSuggestionTextRequired
	}
	if utf8.RuneCountInString(text) > constants.MaxSuggestionText {
		return nil, ErrSuggestionTextTooLong
	}

	if s.assistant == nil {
		return nil, ErrAssistantUnavailable
	}

	raw, err := s.assistant.SuggestTasks(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest tasks: %w", err)
	}

	suggestions := make([]string, 0, len(raw))
	for _, d := range raw {
		description, err := normalizeDescription(d)
		if err != nil {
			continue
		}
		suggestions = append(suggestions, description)
		if len(suggestions) == constants.MaxSuggestedTasks {
			break
		}
	}

	return suggestions, nil
}

func (s *TaskService) listByUser(ctx context.Context, userID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	tasks, total, err := s.repos.Tasks().ListByUser(ctx, userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// findByID rejects anonymous callers before touching storage. For everyone
// else a missing task is reported as not found before ownership is checked.
func (s *TaskService) findByID(ctx context.Context, repos repository.Repositories, p *auth.Principal, id uint64) (*models.Task, error) {
	if !access.RequireAuthenticated(p).Allowed() {
		return nil, ErrAccessDenied
	}

	task, err := repos.Tasks().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, taskNotFound(id)
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !access.CanAccessTask(p, task).Allowed() {
		return nil, ErrAccessDenied
	}
	return task, nil
}
