package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/victor-romero-martinez/api-agendapp/internal/dto"
	apierrors "github.com/victor-romero-martinez/api-agendapp/internal/errors"
	"github.com/victor-romero-martinez/api-agendapp/internal/services"
)

type DashboardHandler struct {
	dashboards *services.DashboardService
}

func NewDashboardHandler(dashboards *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// List returns the caller's dashboards
func (h *DashboardHandler) List(c *gin.Context) {
	claims, ok := identity(c)
	if !ok {
		return
	}

	dashboards, err := h.dashboards.ListByOwner(c.Request.Context(), claims.Email)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardDTOs(dashboards))
}

// Create creates a dashboard owned by the caller
func (h *DashboardHandler) Create(c *gin.Context) {
	claims, ok := identity(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required,max=60"`
	}
	if !bindJSON(c, &req) {
		return
	}

	dashboard, err := h.dashboards.Create(c.Request.Context(), req.Name, claims.Email)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDashboardDTO(*dashboard))
}

// Update renames one of the caller's dashboards
func (h *DashboardHandler) Update(c *gin.Context) {
	claims, ok := identity(c)
	if !ok {
		return
	}

	var req struct {
		ID   uint64 `json:"id" binding:"required,gt=0"`
		Name string `json:"name" binding:"required,max=60"`
	}
	if !bindJSON(c, &req) {
		return
	}

	dashboard, err := h.dashboards.Update(c.Request.Context(), services.UpdateDashboardInput{
		ID:   req.ID,
		Name: req.Name,
	}, claims.Email)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardDTO(*dashboard))
}

// Delete removes one of the caller's dashboards together with its tasks
func (h *DashboardHandler) Delete(c *gin.Context) {
	claims, ok := identity(c)
	if !ok {
		return
	}
	id, ok := deleteID(c)
	if !ok {
		return
	}

	message, err := h.dashboards.Delete(c.Request.Context(), id, claims.Email)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respondMessage(c, message)
}
