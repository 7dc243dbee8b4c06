package repository

import (
	"context"

	"github.com/victor-romero-martinez/api-agendapp/internal/models"
	"github.com/victor-romero-martinez/api-agendapp/internal/utils"
)

// Store groups the repositories that share one database handle, so a caller
// can run several of them inside a single transaction.
type Store interface {
	Users() UserRepository
	Dashboards() DashboardRepository
	Tasks() TaskRepository
	Teams() TeamRepository

	// OwnerOf returns the owning user id of row id in owned.Table,
	// or gorm.ErrRecordNotFound when the row does not exist.
	OwnerOf(ctx context.Context, owned Owned, id uint64) (uint64, error)

	// DeleteOwned deletes row id only when ownerID owns it and reports the rows affected.
	DeleteOwned(ctx context.Context, owned Owned, id, ownerID uint64) (int64, error)

	// Transaction runs fn against a Store bound to one database transaction.
	// Returning an error from fn rolls the transaction back.
	Transaction(ctx context.Context, fn func(Store) error) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email regardless of its active flag
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindActiveByEmail finds an active user by email
	FindActiveByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByEmailToken finds the user with a pending verification token
	FindByEmailToken(ctx context.Context, email, token string) (*models.User, error)

	// List returns users without their password, newest first
	List(ctx context.Context, params utils.PaginationParams) ([]models.User, int64, error)

	// Update applies fields to the user and stamps updated_at
	Update(ctx context.Context, id uint64, fields map[string]interface{}) error

	// CountActiveByIDs counts how many of the given ids are active users
	CountActiveByIDs(ctx context.Context, ids []uint64) (int64, error)
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// Create creates a new dashboard
	Create(ctx context.Context, dashboard *models.Dashboard) error

	// FindByID finds a dashboard by ID
	FindByID(ctx context.Context, id uint64) (*models.Dashboard, error)

	// ListByOwner lists dashboards owned by ownerID
	ListByOwner(ctx context.Context, ownerID uint64) ([]models.Dashboard, error)

	// Rename updates the dashboard name and stamps updated_at
	Rename(ctx context.Context, id uint64, name string) error

	// Delete deletes a dashboard together with its tasks
	Delete(ctx context.Context, id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// Update applies fields to the task and stamps updated_at
	Update(ctx context.Context, id uint64, fields map[string]interface{}) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	AuthorID    *uint64
	DashboardID *uint64
	Status      *models.TaskStatus
	Page        int
	PageSize    int
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// Create creates a new team
	Create(ctx context.Context, team *models.Team) error

	// FindByID finds a team by ID
	FindByID(ctx context.Context, id uint64) (*models.Team, error)

	// ListByAuthor lists teams created by authorID
	ListByAuthor(ctx context.Context, authorID uint64) ([]models.Team, error)

	// SetMembers replaces the member list and stamps updated_at
	SetMembers(ctx context.Context, id uint64, members []uint64) error

	// Delete deletes a team
	Delete(ctx context.Context, id uint64) error
}
