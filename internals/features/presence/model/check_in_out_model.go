package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckInOutModel is one presence session: check-in through check-out.
// A row with CheckOutTime == nil is the child's open session; the partial
// unique index on (child_id) WHERE check_out_time IS NULL guarantees at most
// one of those per child.
type CheckInOutModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID uuid.UUID `gorm:"type:uuid;not null;column:child_id;index:idx_check_in_out_child" json:"child_id"`

	CheckInTime time.Time `gorm:"not null;column:check_in_time" json:"check_in_time"`

	DroppedOffBy     *uuid.UUID `gorm:"type:uuid;column:dropped_off_by" json:"dropped_off_by,omitempty"`
	DroppedOffByType string     `gorm:"size:20;column:dropped_off_by_type" json:"dropped_off_by_type"`
	// Name for people outside the system (grandparent etc.)
	DroppedOffByName *string `gorm:"size:255;column:dropped_off_by_name" json:"dropped_off_by_name,omitempty"`

	// Nil on parent-initiated check-ins until a staff member confirms.
	CheckInConfirmedByStaff *uuid.UUID `gorm:"type:uuid;column:check_in_confirmed_by_staff" json:"check_in_confirmed_by_staff,omitempty"`

	CheckOutTime *time.Time `gorm:"column:check_out_time" json:"check_out_time,omitempty"`

	PickedUpBy     *uuid.UUID `gorm:"type:uuid;column:picked_up_by" json:"picked_up_by,omitempty"`
	PickedUpByType *string    `gorm:"size:20;column:picked_up_by_type" json:"picked_up_by_type,omitempty"`
	PickedUpByName *string    `gorm:"size:255;column:picked_up_by_name" json:"picked_up_by_name,omitempty"`

	CheckOutApprovedByStaff *uuid.UUID `gorm:"type:uuid;column:check_out_approved_by_staff" json:"check_out_approved_by_staff,omitempty"`

	IDVerified bool `gorm:"not null;default:false;column:id_verified" json:"id_verified"`

	// "early pickup due to doctor appointment" etc.
	Notes *string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (CheckInOutModel) TableName() string {
	return "check_in_out_log"
}

func (m *CheckInOutModel) IsOpen() bool {
	return m.CheckOutTime == nil
}

func (m *CheckInOutModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
