package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-simple-api/internal/constants"
	"github.com/yukikurage/todo-simple-api/internal/dto"
	"github.com/yukikurage/todo-simple-api/internal/middleware"
	"github.com/yukikurage/todo-simple-api/internal/services"
	"github.com/yukikurage/todo-simple-api/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
	logger      *slog.Logger
}

func NewUserHandler(userService *services.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetUser returns a single user
func (h *UserHandler) GetUser(c *gin.Context) {
	id, _ := middleware.GetIDParam(c, "id")

	user, err := h.userService.FindByID(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ListUsers returns one page of users; administrators only
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.FindAll(c.Request.Context(), middleware.GetPrincipal(c), params)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header(constants.HeaderTotalCount, strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// CreateUser registers a new account with the USER role
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Create(c.Request.Context(), services.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/user/%d", user.ID))
	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// UpdateUser changes a user's password
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, _ := middleware.GetIDParam(c, "id")

	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.userService.Update(c.Request.Context(), middleware.GetPrincipal(c), id, services.UpdateUserInput{
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteUser removes a user that no longer owns tasks
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, _ := middleware.GetIDParam(c, "id")

	if err := h.userService.Delete(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
