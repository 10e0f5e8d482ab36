package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AbsenceStatus string

const (
	AbsenceStatusPending  AbsenceStatus = "PENDING"  // awaiting staff approval (planned only)
	AbsenceStatusApproved AbsenceStatus = "APPROVED" // confirmed
	AbsenceStatusRejected AbsenceStatus = "REJECTED" // denied by staff
)

type AbsenceType string

const (
	AbsenceTypePlanned   AbsenceType = "PLANNED"   // vacation, appointments
	AbsenceTypeUnplanned AbsenceType = "UNPLANNED" // sickness, same-day
)

// AbsenceModel is a reported absence interval for a child.
// StartDate/EndDate are date-only (inclusive on both ends).
type AbsenceModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID uuid.UUID `gorm:"type:uuid;not null;column:child_id;index:idx_absences_child" json:"child_id"`

	StartDate time.Time `gorm:"type:date;not null;column:start_date" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null;column:end_date" json:"end_date"`

	Type   AbsenceType   `gorm:"type:varchar(20);not null" json:"type"`
	Status AbsenceStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`

	Reason *string `gorm:"size:500" json:"reason,omitempty"`

	ReportedBy     uuid.UUID `gorm:"type:uuid;not null;column:reported_by" json:"reported_by"`
	ReportedByType string    `gorm:"type:varchar(20);not null;column:reported_by_type" json:"reported_by_type"`

	// Set only on an explicit staff decision; auto-approved rows keep it nil.
	ApprovedByStaff *uuid.UUID `gorm:"type:uuid;column:approved_by_staff" json:"approved_by_staff,omitempty"`
	ApprovedAt      *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AbsenceModel) TableName() string {
	return "absences"
}

func (m *AbsenceModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
