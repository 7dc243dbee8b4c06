package dto

import (
	"time"

	"github.com/victor-romero-martinez/api-agendapp/internal/models"
)

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID           uint64    `json:"id"`
	AuthorID     uint64    `json:"author_id"`
	Organization string    `json:"organization"`
	Members      []uint64  `json:"members"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToTeamDTO(team models.Team) TeamDTO {
	return TeamDTO{
		ID:           team.ID,
		AuthorID:     team.AuthorID,
		Organization: team.Organization,
		Members:      team.MemberIDs(),
		CreatedAt:    team.CreatedAt,
		UpdatedAt:    team.UpdatedAt,
	}
}

func ToTeamDTOs(teams []models.Team) []TeamDTO {
	out := make([]TeamDTO, len(teams))
	for i, t := range teams {
		out[i] = ToTeamDTO(t)
	}
	return out
}
