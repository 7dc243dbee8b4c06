package repository

import (
	"context"
	"time"

	"github.com/victor-romero-martinez/api-agendapp/internal/models"
	"gorm.io/gorm"
)

// GormDashboardRepository is a GORM implementation of DashboardRepository
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &GormDashboardRepository{db: db}
}

// Create creates a new dashboard
func (r *GormDashboardRepository) Create(ctx context.Context, dashboard *models.Dashboard) error {
	return r.db.WithContext(ctx).Create(dashboard).Error
}

// FindByID finds a dashboard by ID
func (r *GormDashboardRepository) FindByID(ctx context.Context, id uint64) (*models.Dashboard, error) {
	var dashboard models.Dashboard
	if err := r.db.WithContext(ctx).First(&dashboard, id).Error; err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// ListByOwner lists the dashboards of an owner
func (r *GormDashboardRepository) ListByOwner(ctx context.Context, ownerID uint64) ([]models.Dashboard, error) {
	dashboards := []models.Dashboard{}
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&dashboards).Error; err != nil {
		return nil, err
	}
	return dashboards, nil
}

// Rename updates the dashboard name
func (r *GormDashboardRepository) Rename(ctx context.Context, id uint64, name string) error {
	return r.db.WithContext(ctx).Model(&models.Dashboard{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":       name,
			"updated_at": time.Now(),
		}).Error
}

// Delete deletes a dashboard and its tasks
func (r *GormDashboardRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dashboard_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Dashboard{}, id).Error
	})
}
