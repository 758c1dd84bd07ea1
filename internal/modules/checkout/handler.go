package checkout

import (
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

// RegisterRoutes mounts the desk routes on an authenticated group. staffOnly
// guards the listings, whose operations carry no actor of their own.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, staffOnly gin.HandlerFunc) {
	rg.POST("/reservations/:id/checkout", h.CheckOut)
	rg.POST("/reservations/:id/checkin", h.CheckIn)

	rg.GET("/checkouts/pending", staffOnly, h.Pending)
	rg.GET("/checkouts/open", staffOnly, h.Open)
	rg.GET("/equipment/:id/checkouts", staffOnly, h.History)
}

func (h *Handler) CheckOut(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		h.fail(c, "checkout.check_out", err)
		return
	}
	rec, err := h.service.CheckOut(c.Request.Context(), id, request.ActorID(c))
	if err != nil {
		h.fail(c, "checkout.check_out", err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"checkout": rec})
}

func (h *Handler) CheckIn(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		h.fail(c, "checkout.check_in", err)
		return
	}
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, "checkout.check_in", fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	cond, ok := domain.ParseCondition(req.Condition)
	if !ok {
		h.fail(c, "checkout.check_in", fmt.Errorf("%w: unknown condition %q", domain.ErrValidation, req.Condition))
		return
	}

	rec, err := h.service.CheckIn(c.Request.Context(), id, request.ActorID(c), cond)
	if err != nil {
		h.fail(c, "checkout.check_in", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"checkout": rec})
}

func (h *Handler) Pending(c *gin.Context) {
	items, err := h.service.PendingCheckouts(c.Request.Context())
	if err != nil {
		h.diag.Report(c.Request.Context(), "checkout.pending", err)
		items = nil
	}
	response.Items(c, items)
}

func (h *Handler) Open(c *gin.Context) {
	items, err := h.service.OpenCheckouts(c.Request.Context())
	if err != nil {
		h.diag.Report(c.Request.Context(), "checkout.open", err)
		items = nil
	}
	response.Items(c, items)
}

func (h *Handler) History(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		h.diag.Report(c.Request.Context(), "checkout.history", err)
		response.Items[domain.CheckoutRecord](c, nil)
		return
	}
	items, err := h.service.History(c.Request.Context(), id)
	if err != nil {
		h.diag.Report(c.Request.Context(), "checkout.history", err)
		items = nil
	}
	response.Items(c, items)
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	h.diag.Report(c.Request.Context(), op, err)
	response.Fail(c, err)
}
