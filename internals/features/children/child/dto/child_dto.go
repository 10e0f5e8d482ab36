package dto

import (
	"time"

	"github.com/google/uuid"

	model "checkkid_backend/internals/features/children/child/model"
)

/* ===================== REQUESTS ===================== */

type CreateChildRequest struct {
	FirstName      string     `json:"first_name" validate:"required,max=100"`
	LastName       string     `json:"last_name" validate:"required,max=100"`
	BirthDate      time.Time  `json:"birth_date" validate:"required"`
	KindergartenID uuid.UUID  `json:"kindergarten_id" validate:"required"`
	GroupID        *uuid.UUID `json:"group_id" validate:"omitempty"`

	// relationship flags for the reporting parent, when a parent registers
	RelationshipType *string `json:"relationship_type" validate:"omitempty,max=50"`
	CanPickup        *bool   `json:"can_pickup" validate:"omitempty"`
	CanDropOff       *bool   `json:"can_drop_off" validate:"omitempty"`
}

func (r *CreateChildRequest) ToModel() *model.ChildModel {
	return &model.ChildModel{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		BirthDate:      r.BirthDate,
		KindergartenID: &r.KindergartenID,
		GroupID:        r.GroupID,
	}
}

type UpdateChildRequest struct {
	FirstName *string    `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string    `json:"last_name" validate:"omitempty,max=100"`
	BirthDate *time.Time `json:"birth_date" validate:"omitempty"`
	GroupID   *uuid.UUID `json:"group_id" validate:"omitempty"`
	GroupName *string    `json:"group_name" validate:"omitempty,max=50"`
}

/* ===================== RESPONSES ===================== */

type ChildResponse struct {
	ID             uuid.UUID  `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	BirthDate      time.Time  `json:"birth_date"`
	GroupID        *uuid.UUID `json:"group_id,omitempty"`
	GroupName      *string    `json:"group_name,omitempty"`
	KindergartenID *uuid.UUID `json:"kindergarten_id,omitempty"`
	CheckedIn      bool       `json:"checked_in"`
	CreatedAt      time.Time  `json:"created_at"`
}

func FromChildModel(m model.ChildModel) ChildResponse {
	return ChildResponse{
		ID:             m.ID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		BirthDate:      m.BirthDate,
		GroupID:        m.GroupID,
		GroupName:      m.GroupName,
		KindergartenID: m.KindergartenID,
		CheckedIn:      m.CheckedIn,
		CreatedAt:      m.CreatedAt,
	}
}

func FromChildModels(ms []model.ChildModel) []ChildResponse {
	out := make([]ChildResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromChildModel(m))
	}
	return out
}
