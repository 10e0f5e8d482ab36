package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel is the identity record: credentials and role only. Domain data
// (parent/staff profile) lives in its own table, linked via ProfileID.
type UserModel struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// OpenID subject from Google sign-in.
	OpenIDSubject string `gorm:"size:255;unique;not null;column:openid_subject" json:"-"`
	Email         string `gorm:"size:255;unique;not null" json:"email"`
	Name          string `gorm:"size:255" json:"name"`

	ProfilePictureURL *string `gorm:"size:500;column:profile_picture_url" json:"profile_picture_url,omitempty"`

	TosAccepted   bool       `gorm:"not null;default:false;column:tos_accepted" json:"tos_accepted"`
	TosAcceptedAt *time.Time `gorm:"column:tos_accepted_at" json:"tos_accepted_at,omitempty"`
	TosVersion    *string    `gorm:"size:20;column:tos_version" json:"tos_version,omitempty"`

	// Role is set once at registration completion and never changes after.
	Role string `gorm:"type:varchar(20);not null" json:"role"`

	// Link to the Parent or Staff profile row.
	ProfileID *uuid.UUID `gorm:"type:uuid;column:profile_id" json:"profile_id,omitempty"`

	IsActive  bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) HasProfile() bool {
	return u.ProfileID != nil && *u.ProfileID != uuid.Nil
}

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
