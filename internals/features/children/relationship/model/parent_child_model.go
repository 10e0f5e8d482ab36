package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParentChildModel links a parent profile to a child with per-child
// permission flags. (parent_id, child_id) is unique — the index lives in
// database.EnsureIndexes.
type ParentChildModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ParentID uuid.UUID `gorm:"type:uuid;not null;column:parent_id;index:idx_relationship_parent" json:"parent_id"`
	ChildID  uuid.UUID `gorm:"type:uuid;not null;column:child_id;index:idx_relationship_child" json:"child_id"`

	// "MOTHER", "FATHER", "GUARDIAN", ...
	RelationshipType *string `gorm:"size:50;column:relationship_type" json:"relationship_type,omitempty"`

	CanPickup              bool `gorm:"not null;default:true;column:can_pickup" json:"can_pickup"`
	CanDropOff             bool `gorm:"not null;default:true;column:can_drop_off" json:"can_drop_off"`
	IsPrimaryContact       bool `gorm:"not null;default:false;column:is_primary_contact" json:"is_primary_contact"`
	RequiresIDVerification bool `gorm:"not null;default:false;column:requires_id_verification" json:"requires_id_verification"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ParentChildModel) TableName() string {
	return "parent_child_relationships"
}

func (m *ParentChildModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
