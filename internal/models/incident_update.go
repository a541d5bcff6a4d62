package models

type IncidentUpdate struct {
	BaseModel

	IncidentID uint   `gorm:"not null;index"`
	Message    string `gorm:"not null"`
	Status     string `gorm:"not null"`

	// Relationships
	Incident Incident `gorm:"foreignKey:IncidentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
