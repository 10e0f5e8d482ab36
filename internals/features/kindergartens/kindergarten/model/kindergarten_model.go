package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KindergartenModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Address     *string   `gorm:"size:500" json:"address,omitempty"`
	PhoneNumber *string   `gorm:"size:20;column:phone_number" json:"phone_number,omitempty"`
	Email       *string   `gorm:"size:255" json:"email,omitempty"`

	OpeningTime *string `gorm:"size:10;column:opening_time" json:"opening_time,omitempty"`
	ClosingTime *string `gorm:"size:10;column:closing_time" json:"closing_time,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (KindergartenModel) TableName() string {
	return "kindergartens"
}

func (m *KindergartenModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
