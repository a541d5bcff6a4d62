package models

import (
	"time"
)

type StatusCheck struct {
	BaseModel

	ServiceID    uint   `gorm:"not null;index"`
	Status       string `gorm:"not null"`
	ResponseTime *int   // milliseconds; nil when the probe failed before timing was possible
	ErrorMessage string
	CheckedAt    time.Time `gorm:"not null;index"`

	// Relationships
	Service Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
