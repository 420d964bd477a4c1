package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/todo-simple-api/internal/constants"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrIntegrityViolation = errors.New("cannot delete: related records still reference it")
	ErrInvalidInput       = errors.New("invalid input")
)

var (
	ErrUsernameRequired     = fmt.Errorf("%w: username is required", ErrInvalidInput)
	ErrUsernameLength       = fmt.Errorf("%w: username must be between %d and %d characters", ErrInvalidInput, constants.MinUsernameLength, constants.MaxUsernameLength)
	ErrPasswordTooShort     = fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, constants.MinPasswordLength)
	ErrPasswordTooLong      = fmt.Errorf("%w: password must be at most %d characters", ErrInvalidInput, constants.MaxPasswordLength)
	ErrPasswordTooManyBytes = fmt.Errorf("%w: password must be at most %d bytes when UTF-8 encoded", ErrInvalidInput, constants.MaxPasswordBytes)
	ErrDescriptionRequired  = fmt.Errorf("%w: description is required", ErrInvalidInput)
	ErrDescriptionTooLong   = fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, constants.MaxDescriptionLength)
)

func userNotFound(id uint64) error {
	return fmt.Errorf("%w: id %d", ErrUserNotFound, id)
}

func taskNotFound(id uint64) error {
	return fmt.Errorf("%w: id %d", ErrTaskNotFound, id)
}
