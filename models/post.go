package models

import (
	"time"

	"gorm.io/datatypes"
)

// Posts are only stored when they reference a location. The id is the
// numeric prefix of the raw Instagram media key.
type Post struct {
	ID         int64                       `gorm:"primaryKey"`
	PostedAt   time.Time                   `gorm:"not null;index"`
	Caption    string                      `gorm:"size:5000"`
	Tags       datatypes.JSONSlice[string] `gorm:"not null"`
	Type       string                      `gorm:"size:20;not null"`
	AccountID  int64                       `gorm:"not null;index"`
	LocationID int64                       `gorm:"not null;index"`
	CreatedAt  time.Time
}

func (m *Post) TableName() string {
	return "posts"
}
