package equipment

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

// RegisterRoutes mounts the registry. Reads are public, writes expect the
// group to carry authentication.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/equipment", h.List)
	public.GET("/equipment/:id", h.Get)

	protected.POST("/equipment", h.Create)
	protected.PUT("/equipment/:id", h.Update)
	protected.DELETE("/equipment/:id", h.Delete)
}

// List serves any failure, a bad filter included, as an empty listing
// after reporting it.
func (h *Handler) List(c *gin.Context) {
	var f domain.EquipmentFilter
	if raw := c.Query("status"); raw != "" {
		st, ok := domain.ParseEquipmentStatus(raw)
		if !ok {
			h.diag.Report(c.Request.Context(), "equipment.list", fmt.Errorf("%w: unknown status %q", domain.ErrValidation, raw))
			response.Items[domain.Equipment](c, nil)
			return
		}
		f.Status = &st
	}
	f.Category = c.Query("category")

	items, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.diag.Report(c.Request.Context(), "equipment.list", err)
		items = nil
	}
	response.Items(c, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		h.fail(c, "equipment.get", err)
		return
	}
	e, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "equipment.get", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"equipment": e})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, "equipment.create", fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	e, err := h.service.Create(c.Request.Context(), request.ActorID(c), req)
	if err != nil {
		h.fail(c, "equipment.create", err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"equipment": e})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		h.fail(c, "equipment.update", err)
		return
	}
	var req UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, "equipment.update", fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	e, err := h.service.Update(c.Request.Context(), request.ActorID(c), id, req)
	if err != nil {
		h.fail(c, "equipment.update", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"equipment": e})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		h.fail(c, "equipment.delete", err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), request.ActorID(c), id); err != nil {
		h.fail(c, "equipment.delete", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	h.diag.Report(c.Request.Context(), op, err)
	response.Fail(c, err)
}
