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

type TaskHandler struct {
	taskService *services.TaskService
	logger      *slog.Logger
}

func NewTaskHandler(taskService *services.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// GetTask returns a specific task by ID with its owner
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, _ := middleware.GetIDParam(c, "id")

	task, err := h.taskService.FindByID(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ListMyTasks returns the caller's tasks
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.FindAllForPrincipal(c.Request.Context(), middleware.GetPrincipal(c), params)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header(constants.HeaderTotalCount, strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// ListUserTasks returns the tasks of the user in the path
func (h *TaskHandler) ListUserTasks(c *gin.Context) {
	userID, _ := middleware.GetIDParam(c, "userId")
	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.FindAllForUser(c.Request.Context(), middleware.GetPrincipal(c), userID, params)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header(constants.HeaderTotalCount, strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), middleware.GetPrincipal(c), services.CreateTaskInput{
		Description: req.Description,
		UserID:      req.UserID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/task/%d", task.ID))
	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask replaces a task's description
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, _ := middleware.GetIDParam(c, "id")

	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.taskService.Update(c.Request.Context(), middleware.GetPrincipal(c), id, services.UpdateTaskInput{
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, _ := middleware.GetIDParam(c, "id")

	if err := h.taskService.Delete(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SuggestTasks extracts task descriptions from free text using the assistant
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	var req dto.SuggestTasksRequest
	if !bindJSON(c, &req) {
		return
	}

	suggestions, err := h.taskService.SuggestTasks(c.Request.Context(), middleware.GetPrincipal(c), req.Text)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuggestTasksResponse{Suggestions: suggestions})
}
