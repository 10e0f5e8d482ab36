package dto

import (
	"time"

	"github.com/google/uuid"

	model "checkkid_backend/internals/features/kindergartens/kindergarten/model"
)

type UpdateKindergartenRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Email       *string `json:"email" validate:"omitempty,email"`
	OpeningTime *string `json:"opening_time" validate:"omitempty,max=10"`
	ClosingTime *string `json:"closing_time" validate:"omitempty,max=10"`
}

type KindergartenResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Address     *string   `json:"address,omitempty"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	Email       *string   `json:"email,omitempty"`
	OpeningTime *string   `json:"opening_time,omitempty"`
	ClosingTime *string   `json:"closing_time,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromKindergartenModel(m model.KindergartenModel) KindergartenResponse {
	return KindergartenResponse{
		ID:          m.ID,
		Name:        m.Name,
		Address:     m.Address,
		PhoneNumber: m.PhoneNumber,
		Email:       m.Email,
		OpeningTime: m.OpeningTime,
		ClosingTime: m.ClosingTime,
		CreatedAt:   m.CreatedAt,
	}
}

func FromKindergartenModels(ms []model.KindergartenModel) []KindergartenResponse {
	out := make([]KindergartenResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromKindergartenModel(m))
	}
	return out
}
