package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/todo-simple-api/internal/errors"
	"github.com/yukikurage/todo-simple-api/internal/logging"
	"github.com/yukikurage/todo-simple-api/internal/services"
)

// respondError maps service errors onto HTTP responses. Unknown errors are
// logged and reported as a generic 500.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, "")
	case errors.Is(err, services.ErrAccessDenied):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.AlreadyExists(c, err.Error())
	case errors.Is(err, services.ErrIntegrityViolation):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrAssistantUnavailable):
		apierrors.ServiceUnavailable(c, err.Error())
	default:
		_ = c.Error(err)
		ctx := c.Request.Context()
		logging.FromContext(ctx, logger).ErrorContext(ctx, "request failed",
			slog.String("path", c.FullPath()),
			slog.Any("error", err),
		)
		apierrors.InternalError(c, "")
	}
}

// bindJSON decodes the request body into req and answers 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			apierrors.BadRequestWithDetails(c, "Validation failed", validationDetails(verrs))
			return false
		}
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

func validationDetails(verrs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if fe.Param() != "" {
			details[field] = fmt.Sprintf("failed on %s=%s", fe.Tag(), fe.Param())
		} else {
			details[field] = fmt.Sprintf("failed on %s", fe.Tag())
		}
	}
	return details
}
