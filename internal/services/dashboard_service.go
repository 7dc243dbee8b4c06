package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/victor-romero-martinez/api-agendapp/internal/models"
	"github.com/victor-romero-martinez/api-agendapp/internal/repository"
)

var ErrDashboardNameLength = invalid("Dashboard name must be between 1 and 60 characters.")

// DashboardService handles dashboard business logic
type DashboardService struct {
	store repository.Store
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(store repository.Store) *DashboardService {
	return &DashboardService{store: store}
}

// UpdateDashboardInput represents input for renaming a dashboard
type UpdateDashboardInput struct {
	ID   uint64
	Name string
}

// ListByOwner returns the dashboards owned by the requester
func (s *DashboardService) ListByOwner(ctx context.Context, email string) ([]models.Dashboard, error) {
	owner, err := resolveRequester(ctx, s.store, email)
	if err != nil {
		return nil, err
	}

	dashboards, err := s.store.Dashboards().ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dashboards: %w", err)
	}
	return dashboards, nil
}

// Create creates a dashboard owned by the requester
func (s *DashboardService) Create(ctx context.Context, name, email string) (*models.Dashboard, error) {
	name, err := validateDashboardName(name)
	if err != nil {
		return nil, err
	}

	var dashboard *models.Dashboard
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		owner, err := resolveRequester(ctx, tx, email)
		if err != nil {
			return err
		}

		created := &models.Dashboard{Name: name, OwnerID: owner.ID}
		if err := tx.Dashboards().Create(ctx, created); err != nil {
			return fmt.Errorf("failed to create dashboard: %w", err)
		}

		dashboard, err = tx.Dashboards().FindByID(ctx, created.ID)
		if err != nil {
			return fmt.Errorf("failed to reload dashboard: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return dashboard, nil
}

// Update renames a dashboard; only its owner may do so
func (s *DashboardService) Update(ctx context.Context, input UpdateDashboardInput, email string) (*models.Dashboard, error) {
	name, err := validateDashboardName(input.Name)
	if err != nil {
		return nil, err
	}

	var dashboard *models.Dashboard
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		requester, err := resolveRequester(ctx, tx, email)
		if err != nil {
			return err
		}
		if err := requireOwner(ctx, tx, repository.DashboardOwner, input.ID, requester.ID, ErrDashboardNotFound, ErrUnauthorized); err != nil {
			return err
		}

		if err := tx.Dashboards().Rename(ctx, input.ID, name); err != nil {
			return fmt.Errorf("failed to update dashboard: %w", err)
		}

		dashboard, err = tx.Dashboards().FindByID(ctx, input.ID)
		if err != nil {
			return fmt.Errorf("failed to reload dashboard: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return dashboard, nil
}

// Delete removes a dashboard and its tasks; only its owner may do so
func (s *DashboardService) Delete(ctx context.Context, id uint64, email string) (string, error) {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		requester, err := resolveRequester(ctx, tx, email)
		if err != nil {
			return err
		}
		if err := requireOwner(ctx, tx, repository.DashboardOwner, id, requester.ID, ErrDashboardNotFound, ErrUnauthorized); err != nil {
			return err
		}

		if err := tx.Dashboards().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete dashboard: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Deleted successfully dashboard %d.", id), nil
}

func validateDashboardName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < 1 || n > 60 {
		return "", ErrDashboardNameLength
	}
	return name, nil
}
