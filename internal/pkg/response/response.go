package response

import (
	"net/http"
	"strings"

	"equiplend/internal/domain"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// CustomError writes an error envelope and stops the handler chain.
func CustomError(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}

// Fail writes the generic failure envelope for err. Only the failure kind is
// exposed; the error text itself never reaches the client.
func Fail(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	Error(c, StatusFor(kind), strings.ToUpper(string(kind)), "request failed")
}

// Items writes a listing. A nil slice is written as an empty list.
func Items[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	Success(c, http.StatusOK, gin.H{"items": items})
}

func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindAccessDenied:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
