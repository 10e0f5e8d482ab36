package dto

import (
	"time"

	"github.com/google/uuid"

	model "checkkid_backend/internals/features/parents/model"
)

type UpdateParentRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=100"`
	LastName    *string `json:"last_name" validate:"omitempty,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
}

type ParentResponse struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	Address     *string   `json:"address,omitempty"`
	CanPickup   bool      `json:"can_pickup"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromParentModel(m model.ParentModel) ParentResponse {
	return ParentResponse{
		ID:          m.ID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		Address:     m.Address,
		CanPickup:   m.CanPickup,
		CreatedAt:   m.CreatedAt,
	}
}

func FromParentModels(ms []model.ParentModel) []ParentResponse {
	out := make([]ParentResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromParentModel(m))
	}
	return out
}
