package dto

import (
	"time"

	"github.com/yukikurage/todo-simple-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64     `json:"id"`
	Description string     `json:"description"`
	User        UserRefDTO `json:"user"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateTaskRequest is the task creation payload. UserID is optional and
// names the owner; without it the task belongs to the caller.
type CreateTaskRequest struct {
	Description string  `json:"description" binding:"required,notblank,max=255"`
	UserID      *uint64 `json:"user_id" binding:"omitempty,min=1"`
}

// UpdateTaskRequest replaces a task's description.
type UpdateTaskRequest struct {
	Description string `json:"description" binding:"required,notblank,max=255"`
}

// SuggestTasksRequest carries free text for the task assistant.
type SuggestTasksRequest struct {
	Text string `json:"text" binding:"required,notblank,max=4000"`
}

// SuggestTasksResponse lists suggested task descriptions; nothing is stored.
type SuggestTasksResponse struct {
	Suggestions []string `json:"suggestions"`
}

// ToTaskDTO converts a Task model with its owner loaded to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	owner := ToUserRefDTO(task.User)
	if owner.ID == 0 {
		owner.ID = task.UserID
	}
	return TaskDTO{
		ID:          task.ID,
		Description: task.Description,
		User:        owner,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDTOs converts a page of tasks.
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ToTaskDTO(t))
	}
	return out
}
