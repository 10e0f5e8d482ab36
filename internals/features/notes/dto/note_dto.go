package dto

import (
	"time"

	"github.com/google/uuid"

	model "checkkid_backend/internals/features/notes/model"
)

type CreateNoteRequest struct {
	ChildID        *uuid.UUID `json:"child_id"`
	KindergartenID *uuid.UUID `json:"kindergarten_id"`

	NoteDate time.Time `json:"note_date" validate:"required"`
	Content  string    `json:"content" validate:"required,max=5000"`
	Category *string   `json:"category" validate:"omitempty,max=50"`
}

type NoteResponse struct {
	ID             uuid.UUID  `json:"id"`
	ChildID        *uuid.UUID `json:"child_id,omitempty"`
	KindergartenID *uuid.UUID `json:"kindergarten_id,omitempty"`
	NoteDate       time.Time  `json:"note_date"`
	Content        string     `json:"content"`
	Category       *string    `json:"category,omitempty"`
	CreatedBy      uuid.UUID  `json:"created_by"`
	CreatedByType  string     `json:"created_by_type"`
	CreatedAt      time.Time  `json:"created_at"`
}

func FromNoteModel(m model.NoteModel) NoteResponse {
	return NoteResponse{
		ID:             m.ID,
		ChildID:        m.ChildID,
		KindergartenID: m.KindergartenID,
		NoteDate:       m.NoteDate,
		Content:        m.Content,
		Category:       m.Category,
		CreatedBy:      m.CreatedBy,
		CreatedByType:  m.CreatedByType,
		CreatedAt:      m.CreatedAt,
	}
}

func FromNoteModels(ms []model.NoteModel) []NoteResponse {
	out := make([]NoteResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromNoteModel(m))
	}
	return out
}
