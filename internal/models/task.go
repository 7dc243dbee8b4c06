package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "inprogress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

const (
	MinTaskPriority = 1
	MaxTaskPriority = 5
)

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(60);not null" json:"title"`
	Description *string    `gorm:"type:varchar(250)" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Priority    int        `gorm:"not null" json:"priority"`
	Color       string     `gorm:"type:varchar(60)" json:"color"`
	DueDate     *time.Time `json:"due_date"`
	AuthorID    uint64     `gorm:"not null;index" json:"author_id"`
	AssignedTo  *uint64    `gorm:"index" json:"assigned_to"`
	DashboardID uint64     `gorm:"not null;index" json:"dashboard_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Author    User      `gorm:"foreignKey:AuthorID" json:"-"`
	Dashboard Dashboard `gorm:"foreignKey:DashboardID" json:"-"`
}
