package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupModel is a department/room inside a kindergarten.
type GroupModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Description    *string   `gorm:"size:500" json:"description,omitempty"`
	KindergartenID uuid.UUID `gorm:"type:uuid;not null;column:kindergarten_id;index:idx_groups_kindergarten" json:"kindergarten_id"`
	AgeRange       *string   `gorm:"size:50;column:age_range" json:"age_range,omitempty"`
	MaxCapacity    *int      `gorm:"column:max_capacity" json:"max_capacity,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (GroupModel) TableName() string {
	return "groups"
}

// StaffGroupAssignmentModel links staff to the groups they work in.
type StaffGroupAssignmentModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StaffID uuid.UUID `gorm:"type:uuid;not null;column:staff_id;index:idx_staff_group_staff" json:"staff_id"`
	GroupID uuid.UUID `gorm:"type:uuid;not null;column:group_id;index:idx_staff_group_group" json:"group_id"`

	// Exactly one responsible staff per group is a convention, not a constraint.
	IsResponsible bool `gorm:"not null;default:false;column:is_responsible" json:"is_responsible"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (StaffGroupAssignmentModel) TableName() string {
	return "staff_group_assignments"
}

func (m *GroupModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *StaffGroupAssignmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
