package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoteModel is a dated staff note about a child or the kindergarten day.
type NoteModel struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// Either a child note or a kindergarten-wide note.
	ChildID        *uuid.UUID `gorm:"type:uuid;column:child_id;index:idx_notes_child" json:"child_id,omitempty"`
	KindergartenID *uuid.UUID `gorm:"type:uuid;column:kindergarten_id;index:idx_notes_kindergarten" json:"kindergarten_id,omitempty"`

	NoteDate time.Time `gorm:"type:date;not null;column:note_date" json:"note_date"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	Category *string   `gorm:"size:50" json:"category,omitempty"`

	CreatedBy     uuid.UUID `gorm:"type:uuid;not null;column:created_by" json:"created_by"`
	CreatedByType string    `gorm:"type:varchar(20);not null;column:created_by_type" json:"created_by_type"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (NoteModel) TableName() string {
	return "notes"
}

func (m *NoteModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
