package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Observer receives one observation per served request.
type Observer interface {
	Observe(operation, outcome string, elapsed time.Duration)
}

// Metrics labels each request by its route template and an outcome derived
// from the response status.
func Metrics(o Observer) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		o.Observe(c.Request.Method+" "+route, outcome(c.Writer.Status()), time.Since(start))
	}
}

func outcome(status int) string {
	switch {
	case status < http.StatusBadRequest:
		return "ok"
	case status == http.StatusBadRequest:
		return "validation"
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return "access_denied"
	case status == http.StatusNotFound:
		return "not_found"
	case status == http.StatusConflict:
		return "conflict"
	case status >= http.StatusInternalServerError:
		return "persistence"
	}
	return strconv.Itoa(status)
}
