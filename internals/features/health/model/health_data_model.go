package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HealthDataModel holds per-child medical information. Allergies and
// medications are flat string lists; vaccinations keep their free-form
// shape from the intake form as JSON.
type HealthDataModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID uuid.UUID `gorm:"type:uuid;not null;unique;column:child_id" json:"child_id"`

	Allergies   pq.StringArray `gorm:"type:text[]" json:"allergies,omitempty"`
	Medications pq.StringArray `gorm:"type:text[]" json:"medications,omitempty"`

	Vaccinations datatypes.JSON `gorm:"column:vaccinations" json:"vaccinations,omitempty"`

	DietaryRestrictions *string `gorm:"size:500;column:dietary_restrictions" json:"dietary_restrictions,omitempty"`
	DoctorName          *string `gorm:"size:255;column:doctor_name" json:"doctor_name,omitempty"`
	DoctorPhone         *string `gorm:"size:20;column:doctor_phone" json:"doctor_phone,omitempty"`
	EmergencyNotes      *string `gorm:"size:1000;column:emergency_notes" json:"emergency_notes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HealthDataModel) TableName() string {
	return "health_data"
}

func (m *HealthDataModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
