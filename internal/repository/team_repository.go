package repository

import (
	"context"
	"time"

	"github.com/victor-romero-martinez/api-agendapp/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// Create creates a new team
func (r *GormTeamRepository) Create(ctx context.Context, team *models.Team) error {
	if team.Members == nil {
		team.Members = datatypes.NewJSONSlice([]uint64{})
	}
	return r.db.WithContext(ctx).Create(team).Error
}

// FindByID finds a team by ID
func (r *GormTeamRepository) FindByID(ctx context.Context, id uint64) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// ListByAuthor lists the teams created by a user
func (r *GormTeamRepository) ListByAuthor(ctx context.Context, authorID uint64) ([]models.Team, error) {
	teams := []models.Team{}
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("id ASC").
		Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// SetMembers replaces the serialized member list
func (r *GormTeamRepository) SetMembers(ctx context.Context, id uint64, members []uint64) error {
	if members == nil {
		members = []uint64{}
	}
	return r.db.WithContext(ctx).Model(&models.Team{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"members":    datatypes.NewJSONSlice(members),
			"updated_at": time.Now(),
		}).Error
}

// Delete deletes a team
func (r *GormTeamRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Team{}, id).Error
}
