package models

import (
	"time"

	"gorm.io/datatypes"
)

// TeamAction selects how a membership update is applied.
type TeamAction string

const (
	TeamActionAdd    TeamAction = "add"
	TeamActionRemove TeamAction = "remove"
)

type Team struct {
	ID           uint64                      `gorm:"primarykey" json:"id"`
	AuthorID     uint64                      `gorm:"not null;index" json:"author_id"`
	Organization string                      `gorm:"type:varchar(60);not null" json:"organization"`
	Members      datatypes.JSONSlice[uint64] `gorm:"not null" json:"members"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`

	// Relations
	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

// MemberIDs returns the members as a plain slice, never nil.
func (t *Team) MemberIDs() []uint64 {
	if t.Members == nil {
		return []uint64{}
	}
	return []uint64(t.Members)
}
