package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yukikurage/todo-simple-api/internal/auth"
	"github.com/yukikurage/todo-simple-api/internal/models"
	"github.com/yukikurage/todo-simple-api/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService handles authentication related business logic.
type AuthService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, hasher auth.PasswordHasher, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and issues a bearer token for the user.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (auth.Token, *models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return auth.Token{}, nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return auth.Token{}, nil, ErrInvalidCredentials
		}
		return auth.Token{}, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Check(input.Password, user.PasswordHash) {
		return auth.Token{}, nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return auth.Token{}, nil, fmt.Errorf("failed to issue token: %w", err)
	}

	user.Roles = user.Roles.OrDefault()
	return token, user, nil
}

// ResolvePrincipal turns a raw bearer token into the identity of the caller.
// Any failure yields the anonymous result; callers must treat it as denied.
func (s *AuthService) ResolvePrincipal(ctx context.Context, rawToken string) (auth.Principal, bool) {
	if rawToken == "" {
		return auth.Principal{}, false
	}

	claims, ok := s.tokens.Validate(rawToken)
	if !ok {
		return auth.Principal{}, false
	}

	user, err := s.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.ErrorContext(ctx, "failed to resolve principal", "subject", claims.Subject, "error", err)
		}
		return auth.Principal{}, false
	}

	return auth.PrincipalFromUser(user), true
}
