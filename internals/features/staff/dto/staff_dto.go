package dto

import (
	"time"

	"github.com/google/uuid"

	model "checkkid_backend/internals/features/staff/model"
)

/* ===================== REQUESTS ===================== */

type CreateStaffRequest struct {
	FirstName      string    `json:"first_name" validate:"required,max=100"`
	LastName       string    `json:"last_name" validate:"required,max=100"`
	Email          string    `json:"email" validate:"required,email"`
	EmployeeID     *string   `json:"employee_id" validate:"omitempty,max=50"`
	PhoneNumber    *string   `json:"phone_number" validate:"omitempty,max=20"`
	Position       *string   `json:"position" validate:"omitempty,max=100"`
	KindergartenID uuid.UUID `json:"kindergarten_id" validate:"required"`
	IsAdmin        bool      `json:"is_admin"`

	// one-time code the new staff member uses to claim the profile
	InviteCode string `json:"invite_code" validate:"required,min=8,max=64"`
}

type UpdateStaffRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=100"`
	LastName    *string `json:"last_name" validate:"omitempty,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Position    *string `json:"position" validate:"omitempty,max=100"`
	IsAdmin     *bool   `json:"is_admin" validate:"omitempty"`
}

/* ===================== RESPONSES ===================== */

type StaffResponse struct {
	ID             uuid.UUID  `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	EmployeeID     *string    `json:"employee_id,omitempty"`
	PhoneNumber    *string    `json:"phone_number,omitempty"`
	Position       *string    `json:"position,omitempty"`
	IsAdmin        bool       `json:"is_admin"`
	KindergartenID *uuid.UUID `json:"kindergarten_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func FromStaffModel(m model.StaffModel) StaffResponse {
	return StaffResponse{
		ID:             m.ID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		EmployeeID:     m.EmployeeID,
		PhoneNumber:    m.PhoneNumber,
		Position:       m.Position,
		IsAdmin:        m.IsAdmin,
		KindergartenID: m.KindergartenID,
		CreatedAt:      m.CreatedAt,
	}
}

func FromStaffModels(ms []model.StaffModel) []StaffResponse {
	out := make([]StaffResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromStaffModel(m))
	}
	return out
}
