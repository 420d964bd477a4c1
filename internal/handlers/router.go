package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-simple-api/internal/middleware"
	"github.com/yukikurage/todo-simple-api/internal/services"
)

// RouterDeps carries everything the HTTP layer needs.
type RouterDeps struct {
	Logger       *slog.Logger
	SessionStore sessions.Store
	AuthService  *services.AuthService
	UserService  *services.UserService
	TaskService  *services.TaskService
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Sessions(deps.SessionStore))
	r.Use(middleware.ResolvePrincipal(deps.AuthService))

	authHandler := NewAuthHandler(deps.AuthService, deps.Logger)
	userHandler := NewUserHandler(deps.UserService, deps.Logger)
	taskHandler := NewTaskHandler(deps.TaskService, deps.Logger)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "To-do API is running",
		})
	})

	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	users := r.Group("/user")
	{
		users.GET("", userHandler.ListUsers)
		users.POST("", userHandler.CreateUser)
		users.GET("/:id", middleware.RequireIDParam("id"), userHandler.GetUser)
		users.PUT("/:id", middleware.RequireIDParam("id"), userHandler.UpdateUser)
		users.DELETE("/:id", middleware.RequireIDParam("id"), userHandler.DeleteUser)
	}

	tasks := r.Group("/task")
	{
		tasks.POST("", taskHandler.CreateTask)
		tasks.POST("/suggestions", taskHandler.SuggestTasks)
		tasks.GET("/user", taskHandler.ListMyTasks)
		tasks.GET("/user/:userId", middleware.RequireIDParam("userId"), taskHandler.ListUserTasks)
		tasks.GET("/:id", middleware.RequireIDParam("id"), taskHandler.GetTask)
		tasks.PUT("/:id", middleware.RequireIDParam("id"), taskHandler.UpdateTask)
		tasks.DELETE("/:id", middleware.RequireIDParam("id"), taskHandler.DeleteTask)
	}

	return r
}
