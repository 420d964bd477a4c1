package middleware

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/todo-simple-api/internal/errors"
)

const idParamPrefix = "param_id:"

// RequireIDParam parses the numeric path parameter name and rejects the
// request with 400 when it is missing, malformed or zero.
func RequireIDParam(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(name), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, fmt.Sprintf("Invalid %s", name))
			return
		}

		c.Set(idParamPrefix+name, id)
		c.Next()
	}
}

// GetIDParam returns the id parsed by RequireIDParam.
func GetIDParam(c *gin.Context, name string) (uint64, bool) {
	v, exists := c.Get(idParamPrefix + name)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}
