package models

import (
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"type:varchar(255);not null" json:"-"`
	UserName   *string   `gorm:"type:varchar(60)" json:"user_name"`
	URLImg     *string   `gorm:"type:varchar(255)" json:"url_img"`
	Role       Role      `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Active     bool      `gorm:"not null;default:true" json:"active"`
	Verified   bool      `gorm:"not null;default:false" json:"verified"`
	TokenEmail *string   `gorm:"type:text" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Dashboards []Dashboard `gorm:"foreignKey:OwnerID" json:"-"`
	Tasks      []Task      `gorm:"foreignKey:AuthorID" json:"-"`
	Teams      []Team      `gorm:"foreignKey:AuthorID" json:"-"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
