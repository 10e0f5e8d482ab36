package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParentModel is the parent profile behind a PARENT user.
type ParentModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName   string    `gorm:"size:100;not null;column:first_name" json:"first_name"`
	LastName    string    `gorm:"size:100;not null;column:last_name" json:"last_name"`
	Email       string    `gorm:"size:255;not null" json:"email"`
	PhoneNumber *string   `gorm:"size:20;column:phone_number" json:"phone_number,omitempty"`
	Address     *string   `gorm:"size:500" json:"address,omitempty"`

	// Default pickup permission; per-child overrides live on the relationship.
	CanPickup bool `gorm:"not null;default:true;column:can_pickup" json:"can_pickup"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ParentModel) TableName() string {
	return "parents"
}

func (m *ParentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
