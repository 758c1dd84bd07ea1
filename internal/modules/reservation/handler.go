package reservation

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.Create)
	rg.GET("/reservations", h.List)
	rg.GET("/reservations/:id", h.Get)
	rg.POST("/reservations/:id/decision", h.Decide)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, "reservation.request", fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	req.RequesterID = request.ActorID(c)

	r, err := h.service.Request(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "reservation.request", err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"reservation": r})
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.service.ListForActor(c.Request.Context(), request.ActorID(c))
	if err != nil {
		h.diag.Report(c.Request.Context(), "reservation.list", err)
		items = nil
	}
	response.Items(c, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		h.fail(c, "reservation.get", err)
		return
	}
	r, err := h.service.Get(c.Request.Context(), request.ActorID(c), id)
	if err != nil {
		h.fail(c, "reservation.get", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) Decide(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		h.fail(c, "reservation.decide", err)
		return
	}
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, "reservation.decide", fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	decision, ok := domain.ParseDecision(req.Decision)
	if !ok {
		h.fail(c, "reservation.decide", fmt.Errorf("%w: unknown decision %q", domain.ErrValidation, req.Decision))
		return
	}

	r, err := h.service.Decide(c.Request.Context(), id, decision, request.ActorID(c))
	if err != nil {
		h.fail(c, "reservation.decide", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	h.diag.Report(c.Request.Context(), op, err)
	response.Fail(c, err)
}
