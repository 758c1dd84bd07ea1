package request

import (
	"fmt"
	"strconv"

	"equiplend/internal/domain"

	"github.com/gin-gonic/gin"
)

// PathID parses a positive int64 path parameter.
func PathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", domain.ErrValidation, name)
	}
	return id, nil
}

// ActorID is the authenticated actor, or 0 when the route is public.
func ActorID(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}
