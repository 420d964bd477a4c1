package dto

import (
	"time"

	"github.com/yukikurage/todo-simple-api/internal/models"
)

// UserRefDTO identifies a user inside other resources.
type UserRefDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// UserDTO represents a user in API responses. The password hash never leaves the server.
type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserRequest is the registration payload. Any id or roles sent by the
// client are not part of it and therefore ignored.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,notblank,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8,max=60"`
}

// UpdateUserRequest carries a new password.
type UpdateUserRequest struct {
	Password string `json:"password" binding:"required,min=8,max=60"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Roles:     user.Roles.OrDefault().Strings(),
		CreatedAt: user.CreatedAt,
	}
}

// ToUserRefDTO converts a User model to UserRefDTO
func ToUserRefDTO(user models.User) UserRefDTO {
	return UserRefDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToUserDTOs converts a page of users.
func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserDTO(u))
	}
	return out
}
