package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-simple-api/internal/auth"
	"github.com/yukikurage/todo-simple-api/internal/config"
	"github.com/yukikurage/todo-simple-api/internal/database"
	"github.com/yukikurage/todo-simple-api/internal/handlers"
	"github.com/yukikurage/todo-simple-api/internal/logging"
	"github.com/yukikurage/todo-simple-api/internal/middleware"
	"github.com/yukikurage/todo-simple-api/internal/repository"
	"github.com/yukikurage/todo-simple-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	slog.SetDefault(logger)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// A missing or weak signing secret stops the server before it accepts requests.
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiration)
	if err != nil {
		fatal(logger, "invalid token configuration", err)
	}

	// Connect to database
	db, err := database.Connect(cfg, logger)
	if err != nil {
		fatal(logger, "failed to connect to database", err)
	}

	// Run migrations
	if err := database.Migrate(db, logger); err != nil {
		fatal(logger, "failed to run migrations", err)
	}

	store := repository.NewStore(db)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	// Initialize AI service
	var assistant services.TaskSuggester
	if cfg.OpenAIAPIKey != "" {
		assistant = services.NewAIService(cfg.OpenAIAPIKey)
	}

	userService := services.NewUserService(store, store, hasher)
	taskService := services.NewTaskService(store, store, userService, assistant)
	authService := services.NewAuthService(store.Users(), hasher, tokens, logger)

	if cfg.AdminUsername != "" {
		admin, err := userService.BootstrapAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			fatal(logger, "failed to bootstrap admin", err)
		}
		logger.Info("admin account ready", slog.String("username", admin.Username), slog.Uint64("id", admin.ID))
	}

	sessionStore, err := middleware.NewSessionStore(cfg)
	if err != nil {
		fatal(logger, "failed to create session store", err)
	}

	if err := handlers.RegisterValidators(); err != nil {
		fatal(logger, "failed to register validators", err)
	}

	r := handlers.NewRouter(handlers.RouterDeps{
		Logger:       logger,
		SessionStore: sessionStore,
		AuthService:  authService,
		UserService:  userService,
		TaskService:  taskService,
	})

	// Start server
	logger.Info("server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		fatal(logger, "failed to start server", err)
	}
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, slog.Any("error", err))
	os.Exit(1)
}
