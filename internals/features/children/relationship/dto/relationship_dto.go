package dto

import (
	"time"

	"github.com/google/uuid"

	model "checkkid_backend/internals/features/children/relationship/model"
)

/* ===================== REQUESTS ===================== */

type CreateRelationshipRequest struct {
	ParentID         uuid.UUID `json:"parent_id" validate:"required"`
	ChildID          uuid.UUID `json:"child_id" validate:"required"`
	RelationshipType *string   `json:"relationship_type" validate:"omitempty,max=50"`

	CanPickup              *bool `json:"can_pickup" validate:"omitempty"`
	CanDropOff             *bool `json:"can_drop_off" validate:"omitempty"`
	IsPrimaryContact       *bool `json:"is_primary_contact" validate:"omitempty"`
	RequiresIDVerification *bool `json:"requires_id_verification" validate:"omitempty"`
}

type UpdateRelationshipRequest struct {
	RelationshipType       *string `json:"relationship_type" validate:"omitempty,max=50"`
	CanPickup              *bool   `json:"can_pickup" validate:"omitempty"`
	CanDropOff             *bool   `json:"can_drop_off" validate:"omitempty"`
	IsPrimaryContact       *bool   `json:"is_primary_contact" validate:"omitempty"`
	RequiresIDVerification *bool   `json:"requires_id_verification" validate:"omitempty"`
}

/* ===================== RESPONSES ===================== */

type RelationshipResponse struct {
	ID                     uuid.UUID `json:"id"`
	ParentID               uuid.UUID `json:"parent_id"`
	ChildID                uuid.UUID `json:"child_id"`
	RelationshipType       *string   `json:"relationship_type,omitempty"`
	CanPickup              bool      `json:"can_pickup"`
	CanDropOff             bool      `json:"can_drop_off"`
	IsPrimaryContact       bool      `json:"is_primary_contact"`
	RequiresIDVerification bool      `json:"requires_id_verification"`
	CreatedAt              time.Time `json:"created_at"`
}

func FromRelationshipModel(m model.ParentChildModel) RelationshipResponse {
	return RelationshipResponse{
		ID:                     m.ID,
		ParentID:               m.ParentID,
		ChildID:                m.ChildID,
		RelationshipType:       m.RelationshipType,
		CanPickup:              m.CanPickup,
		CanDropOff:             m.CanDropOff,
		IsPrimaryContact:       m.IsPrimaryContact,
		RequiresIDVerification: m.RequiresIDVerification,
		CreatedAt:              m.CreatedAt,
	}
}

func FromRelationshipModels(ms []model.ParentChildModel) []RelationshipResponse {
	out := make([]RelationshipResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromRelationshipModel(m))
	}
	return out
}
