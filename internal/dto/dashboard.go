package dto

import (
	"time"

	"github.com/victor-romero-martinez/api-agendapp/internal/models"
)

// DashboardDTO represents a dashboard in API responses
type DashboardDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uint64    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToDashboardDTO(dashboard models.Dashboard) DashboardDTO {
	return DashboardDTO{
		ID:        dashboard.ID,
		Name:      dashboard.Name,
		OwnerID:   dashboard.OwnerID,
		CreatedAt: dashboard.CreatedAt,
		UpdatedAt: dashboard.UpdatedAt,
	}
}

func ToDashboardDTOs(dashboards []models.Dashboard) []DashboardDTO {
	out := make([]DashboardDTO, len(dashboards))
	for i, d := range dashboards {
		out[i] = ToDashboardDTO(d)
	}
	return out
}
