package models

import (
	"time"
)

type Incident struct {
	BaseModel

	ServiceID   uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Status      string    `gorm:"not null"`
	StartedAt   time.Time `gorm:"not null"`
	ResolvedAt  *time.Time

	// Relationships
	Service Service          `gorm:"foreignKey:ServiceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Updates []IncidentUpdate `gorm:"foreignKey:IncidentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// Active reports whether the incident still needs attention. Operator-set
// statuses (identified, monitoring) count the same as investigating.
func (i *Incident) Active() bool {
	return i.Status != "resolved"
}
