package models

import "time"

// BaseModel is gorm.Model without soft deletes. Checks and incident updates
// are append-only rows and must never be hidden by a deleted_at filter.
type BaseModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
