package services

import (
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/todo-simple-api/internal/constants"
)

func normalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", ErrUsernameRequired
	}
	if n := utf8.RuneCountInString(username); n < constants.MinUsernameLength || n > constants.MaxUsernameLength {
		return "", ErrUsernameLength
	}
	return username, nil
}

func validatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}
	if n > constants.MaxPasswordLength {
		return ErrPasswordTooLong
	}
	// bcrypt only accepts up to 72 bytes.
	if len(password) > constants.MaxPasswordBytes {
		return ErrPasswordTooManyBytes
	}
	return nil
}

func normalizeDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", ErrDescriptionRequired
	}
	if utf8.RuneCountInString(description) > constants.MaxDescriptionLength {
		return "", ErrDescriptionTooLong
	}
	return description, nil
}
