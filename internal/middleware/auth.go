package middleware

import (
	"context"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-simple-api/internal/auth"
	"github.com/yukikurage/todo-simple-api/internal/constants"
)

// PrincipalResolver turns a raw bearer token into the caller's identity.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, rawToken string) (auth.Principal, bool)
}

// ResolvePrincipal reads the bearer token from the Authorization header, or
// from the session cookie set at login, and stores the resolved principal in
// the context. Requests without a valid token continue anonymously; access is
// decided later by the services.
func ResolvePrincipal(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			if v, ok := sessions.Default(c).Get(constants.SessionKeyToken).(string); ok {
				token = v
			}
		}

		if token != "" {
			if p, ok := resolver.ResolvePrincipal(c.Request.Context(), token); ok {
				c.Set(constants.ContextKeyPrincipal, &p)
			}
		}
		c.Next()
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <t>" header.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) < len(constants.BearerPrefix) || !strings.EqualFold(header[:len(constants.BearerPrefix)], constants.BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(constants.BearerPrefix):])
}

// GetPrincipal retrieves the current principal from context; nil means anonymous.
func GetPrincipal(c *gin.Context) *auth.Principal {
	v, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return nil
	}

	p, ok := v.(*auth.Principal)
	if !ok {
		return nil
	}
	return p
}
