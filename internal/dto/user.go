package dto

import (
	"time"

	"github.com/victor-romero-martinez/api-agendapp/internal/models"
	"github.com/victor-romero-martinez/api-agendapp/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64      `json:"id"`
	Email     string      `json:"email"`
	UserName  *string     `json:"user_name"`
	URLImg    *string     `json:"url_img"`
	Role      models.Role `json:"role"`
	Active    bool        `json:"active"`
	Verified  bool        `json:"verified"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []UserDTO                `json:"users"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// MessageResponse carries a plain outcome message
type MessageResponse struct {
	Message string `json:"message"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		UserName:  user.UserName,
		URLImg:    user.URLImg,
		Role:      user.Role,
		Active:    user.Active,
		Verified:  user.Verified,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToUserListResponse converts a page of users
func ToUserListResponse(users []models.User, pagination utils.PaginationResponse) UserListResponse {
	items := make([]UserDTO, len(users))
	for i, u := range users {
		items[i] = ToUserDTO(u)
	}
	return UserListResponse{
		Users:      items,
		Pagination: pagination,
	}
}
