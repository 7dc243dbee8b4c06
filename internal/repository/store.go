package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Owned names the table of an owned entity and the column holding its owner's user id.
type Owned struct {
	Table       string
	OwnerColumn string
}

var (
	DashboardOwner = Owned{Table: "dashboards", OwnerColumn: "owner_id"}
	TaskAuthor     = Owned{Table: "tasks", OwnerColumn: "author_id"}
	TeamAuthor     = Owned{Table: "teams", OwnerColumn: "author_id"}
)

// GormStore is a GORM implementation of Store
type GormStore struct {
	db *gorm.DB
}

// NewStore creates a new Store
func NewStore(db *gorm.DB) Store {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository {
	return NewUserRepository(s.db)
}

func (s *GormStore) Dashboards() DashboardRepository {
	return NewDashboardRepository(s.db)
}

func (s *GormStore) Tasks() TaskRepository {
	return NewTaskRepository(s.db)
}

func (s *GormStore) Teams() TeamRepository {
	return NewTeamRepository(s.db)
}

// OwnerOf returns the owning user id of a row
func (s *GormStore) OwnerOf(ctx context.Context, owned Owned, id uint64) (uint64, error) {
	var owners []uint64
	err := s.db.WithContext(ctx).
		Table(owned.Table).
		Where("id = ?", id).
		Limit(1).
		Pluck(owned.OwnerColumn, &owners).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read %s.%s: %w", owned.Table, owned.OwnerColumn, err)
	}
	if len(owners) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return owners[0], nil
}

// DeleteOwned deletes a row scoped to its owner
func (s *GormStore) DeleteOwned(ctx context.Context, owned Owned, id, ownerID uint64) (int64, error) {
	sql := fmt.Sprintf("DELETE FROM %s WHERE id = ? AND %s = ?", owned.Table, owned.OwnerColumn)
	result := s.db.WithContext(ctx).Exec(sql, id, ownerID)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", owned.Table, result.Error)
	}
	return result.RowsAffected, nil
}

// Transaction runs fn inside a database transaction
func (s *GormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
