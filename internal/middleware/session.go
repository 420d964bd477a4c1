package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/yukikurage/todo-simple-api/internal/config"
	"github.com/yukikurage/todo-simple-api/internal/constants"
)

// NewSessionStore builds the session backend named by SESSION_STORE. The
// session only carries the bearer token issued at login, so its lifetime
// matches the token's.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "redis":
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		s, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // username (empty for default user)
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, errors.Wrap(err, "create redis session store")
		}
		store = s
	case "cookie", "":
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	default:
		return nil, errors.Errorf("unsupported session store %q", cfg.SessionStore)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.JWTExpiration.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// Sessions installs the session middleware under the application cookie name.
func Sessions(store sessions.Store) gin.HandlerFunc {
	return sessions.Sessions(constants.SessionCookieName, store)
}
