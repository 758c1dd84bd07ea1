package middleware

import (
	"context"
	"net/http"

	"equiplend/internal/domain"
	"equiplend/internal/pkg/diagnostics"
	"equiplend/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RoleGate resolves an actor's stored role and authorizes it.
type RoleGate interface {
	Require(ctx context.Context, actorID int64, allowed ...domain.Role) (*domain.Actor, error)
}

// RequireRole guards routes whose operations take no actor. The role is read
// from storage through the gate, never from the token.
func RequireRole(gate RoleGate, sink diagnostics.Sink, roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		if userID == 0 {
			response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		if _, err := gate.Require(c.Request.Context(), userID, roles...); err != nil {
			if sink != nil {
				sink.Report(c.Request.Context(), "access.require_role", err)
			}
			response.Fail(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}
