package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/victor-romero-martinez/api-agendapp/internal/dto"
	apierrors "github.com/victor-romero-martinez/api-agendapp/internal/errors"
	"github.com/victor-romero-martinez/api-agendapp/internal/models"
	"github.com/victor-romero-martinez/api-agendapp/internal/services"
)

type TeamHandler struct {
	teams *services.TeamService
}

func NewTeamHandler(teams *services.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

// List returns the teams the caller created
func (h *TeamHandler) List(c *gin.Context) {
	claims, ok := identity(c)
	if !ok {
		return
	}

	teams, err := h.teams.Get(c.Request.Context(), claims.Email)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDTOs(teams))
}

func (h *TeamHandler) Create(c *gin.Context) {
	claims, ok := identity(c)
	if !ok {
		return
	}

	var req struct {
		Organization string   `json:"organization" binding:"required"`
		Members      []uint64 `json:"members" binding:"required,min=1,dive,gt=0"`
	}
	if !bindJSON(c, &req) {
		return
	}

	team, err := h.teams.Create(c.Request.Context(), services.CreateTeamInput{
		Organization: req.Organization,
		Members:      req.Members,
	}, claims.Email)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamDTO(*team))
}

// Update adds or removes members depending on action
func (h *TeamHandler) Update(c *gin.Context) {
	claims, ok := identity(c)
	if !ok {
		return
	}

	var req struct {
		ID      uint64            `json:"id" binding:"required,gt=0"`
		Members []uint64          `json:"members" binding:"required,min=1,dive,gt=0"`
		Action  models.TeamAction `json:"action" binding:"required,oneof=add remove"`
	}
	if !bindJSON(c, &req) {
		return
	}

	team, err := h.teams.Update(c.Request.Context(), services.UpdateTeamInput{
		ID:      req.ID,
		Members: req.Members,
		Action:  req.Action,
	}, claims.Email)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDTO(*team))
}

func (h *TeamHandler) Delete(c *gin.Context) {
	claims, ok := identity(c)
	if !ok {
		return
	}
	id, ok := deleteID(c)
	if !ok {
		return
	}

	message, err := h.teams.Delete(c.Request.Context(), id, claims.Email)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respondMessage(c, message)
}
