package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reddrop/reddrop-api/internal/api/handler/v1/response"
	"github.com/reddrop/reddrop-api/internal/api/middleware"
)

// getUserIDFromContext returns the id stored by the JWT middleware.
func getUserIDFromContext(ctx *gin.Context) (uint, *response.Err) {
	value, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return 0, response.ErrMissingSession()
	}

	userID, ok := value.(uint)
	if !ok || userID == 0 {
		return 0, response.ErrMissingSession()
	}

	return userID, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}

	return uint(id), true
}
