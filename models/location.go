package models

import (
	"time"
)

// Locations are immutable once created, first writer wins.
type Location struct {
	ID        int64   `gorm:"primaryKey"`
	Name      string  `gorm:"size:200;not null"`
	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`
	CreatedAt time.Time
}

func (m *Location) TableName() string {
	return "locations"
}
