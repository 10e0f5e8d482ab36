package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChildModel is the enrolled child record.
type ChildModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null;column:first_name" json:"first_name"`
	LastName  string    `gorm:"size:100;not null;column:last_name" json:"last_name"`
	BirthDate time.Time `gorm:"type:date;not null;column:birth_date" json:"birth_date"`

	GroupID        *uuid.UUID `gorm:"type:uuid;column:group_id" json:"group_id,omitempty"`
	GroupName      *string    `gorm:"size:50;column:group_name" json:"group_name,omitempty"`
	KindergartenID *uuid.UUID `gorm:"type:uuid;column:kindergarten_id" json:"kindergarten_id,omitempty"`

	HealthDataID *uuid.UUID `gorm:"type:uuid;column:health_data_id" json:"health_data_id,omitempty"`

	// Denormalized mirror of the open presence session, kept in the same
	// transaction as check-in/out so list views stay cheap.
	CheckedIn bool `gorm:"not null;default:false;column:checked_in" json:"checked_in"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ChildModel) TableName() string {
	return "children"
}

func (m *ChildModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
