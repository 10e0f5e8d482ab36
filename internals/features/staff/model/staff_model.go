package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StaffModel is the staff profile behind a STAFF or BOSS user, scoped to one
// kindergarten. IsAdmin marks privileged staff below boss level.
type StaffModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName   string    `gorm:"size:100;not null;column:first_name" json:"first_name"`
	LastName    string    `gorm:"size:100;not null;column:last_name" json:"last_name"`
	EmployeeID  *string   `gorm:"size:50;unique;column:employee_id" json:"employee_id,omitempty"`
	PhoneNumber *string   `gorm:"size:20;column:phone_number" json:"phone_number,omitempty"`
	Email       string    `gorm:"size:255;not null" json:"email"`
	Position    *string   `gorm:"size:100" json:"position,omitempty"`

	IsAdmin        bool       `gorm:"not null;default:false;column:is_admin" json:"is_admin"`
	KindergartenID *uuid.UUID `gorm:"type:uuid;column:kindergarten_id" json:"kindergarten_id,omitempty"`

	// bcrypt hash of the invite code handed out when the account was provisioned
	InviteCodeHash *string `gorm:"size:100;column:invite_code_hash" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StaffModel) TableName() string {
	return "staff"
}

func (s *StaffModel) WorksAt(kindergartenID uuid.UUID) bool {
	return s.KindergartenID != nil && *s.KindergartenID == kindergartenID
}

func (m *StaffModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
