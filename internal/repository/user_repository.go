package repository

import (
	"context"
	"time"

	"github.com/victor-romero-martinez/api-agendapp/internal/database"
	"github.com/victor-romero-martinez/api-agendapp/internal/models"
	"github.com/victor-romero-martinez/api-agendapp/internal/utils"
	"gorm.io/gorm"
)

// userColumns is the public projection of a user row; it never includes the password.
var userColumns = []string{
	"id", "email", "user_name", "url_img", "role", "active", "verified", "created_at", "updated_at",
}

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindActiveByEmail finds an active user by email
func (r *GormUserRepository) FindActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ? AND active = ?", email, true).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailToken finds the user whose pending verification token matches
func (r *GormUserRepository) FindByEmailToken(ctx context.Context, email, token string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ? AND token_email = ?", email, token).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns a page of users
func (r *GormUserRepository) List(ctx context.Context, params utils.PaginationParams) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	users := []models.User{}
	if err := query.
		Select(userColumns).
		Order("id ASC").
		Scopes(database.Paginate(params)).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update applies fields to a user
func (r *GormUserRepository) Update(ctx context.Context, id uint64, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

// CountActiveByIDs counts active users among ids
func (r *GormUserRepository) CountActiveByIDs(ctx context.Context, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id IN ? AND active = ?", ids, true).
		Count(&count).Error

	return count, err
}
