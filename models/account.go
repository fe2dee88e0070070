package models

import (
	"time"
)

// Account ids are assigned by Instagram. Records are created lazily the
// first time an id is dequeued or seeded, and only the crawler mutates them.
type Account struct {
	ID           int64  `gorm:"primaryKey"`
	Cursor       string `gorm:"size:100"`
	FullyScraped bool   `gorm:"not null;default:false"`
	Private      bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (m *Account) TableName() string {
	return "accounts"
}
