package auth

import (
	"errors"
	"fmt"
	"net/http"

	"equiplend/internal/domain"
	"equiplend/internal/pkg/diagnostics"
	"equiplend/internal/pkg/request"
	"equiplend/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	diag    diagnostics.Sink
}

func NewHandler(service *Service, diag diagnostics.Sink) *Handler {
	return &Handler{service: service, diag: diag}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, "auth.login", fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.diag.Report(c.Request.Context(), "auth.login", err)
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		h.fail(c, "auth.login", err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Me(c *gin.Context) {
	actor, err := h.service.Me(c.Request.Context(), request.ActorID(c))
	if err != nil {
		h.fail(c, "auth.me", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"actor": actor})
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	h.diag.Report(c.Request.Context(), op, err)
	response.Fail(c, err)
}
