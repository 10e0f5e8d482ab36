package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChildPermissionsModel holds the consent flags parents sign off on,
// one row per child.
type ChildPermissionsModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID uuid.UUID `gorm:"type:uuid;not null;unique;column:child_id" json:"child_id"`

	AllowPhotography       bool `gorm:"not null;default:false;column:allow_photography" json:"allow_photography"`
	AllowPictureSharing    bool `gorm:"not null;default:false;column:allow_picture_sharing" json:"allow_picture_sharing"`
	AllowSocialMediaPosts  bool `gorm:"not null;default:false;column:allow_social_media_posts" json:"allow_social_media_posts"`
	AllowTrips             bool `gorm:"not null;default:true;column:allow_trips" json:"allow_trips"`
	AllowPublicNameSharing bool `gorm:"not null;default:false;column:allow_public_name_sharing" json:"allow_public_name_sharing"`

	ConsentGivenBy *uuid.UUID `gorm:"type:uuid;column:consent_given_by" json:"consent_given_by,omitempty"`
	ConsentGivenAt *time.Time `gorm:"column:consent_given_at" json:"consent_given_at,omitempty"`

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ChildPermissionsModel) TableName() string {
	return "child_permissions"
}

func (m *ChildPermissionsModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
