package models

import (
	"gorm.io/datatypes"
)

type Service struct {
	BaseModel

	Name   string         `gorm:"not null"`
	URL    string         `gorm:"not null"`
	Type   string         `gorm:"not null"` // "frontend", "backend", etc. (display only)
	Config datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	StatusChecks []StatusCheck `gorm:"foreignKey:ServiceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Incidents    []Incident    `gorm:"foreignKey:ServiceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
