package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-simple-api/internal/constants"
	"github.com/yukikurage/todo-simple-api/internal/dto"
	apierrors "github.com/yukikurage/todo-simple-api/internal/errors"
	"github.com/yukikurage/todo-simple-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login authenticates a user and returns a bearer token. The token is sent in
// the Authorization header and the body, and is kept in the session cookie
// for browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyToken, token.Value)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.Header("Authorization", constants.BearerPrefix+token.Value)
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		User:      dto.ToUserDTO(*user),
	})
}

// Logout removes the token from the session. The token itself stays valid
// until it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}
