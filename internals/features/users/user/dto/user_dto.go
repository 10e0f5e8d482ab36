package dto

import (
	"time"

	"github.com/google/uuid"

	model "checkkid_backend/internals/features/users/user/model"
)

type UserResponse struct {
	ID                uuid.UUID  `json:"id"`
	Email             string     `json:"email"`
	Name              string     `json:"name"`
	ProfilePictureURL *string    `json:"profile_picture_url,omitempty"`
	Role              string     `json:"role"`
	ProfileID         *uuid.UUID `json:"profile_id,omitempty"`
	TosAccepted       bool       `json:"tos_accepted"`
	IsActive          bool       `json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
}

func FromUserModel(m model.UserModel) UserResponse {
	return UserResponse{
		ID:                m.ID,
		Email:             m.Email,
		Name:              m.Name,
		ProfilePictureURL: m.ProfilePictureURL,
		Role:              m.Role,
		ProfileID:         m.ProfileID,
		TosAccepted:       m.TosAccepted,
		IsActive:          m.IsActive,
		CreatedAt:         m.CreatedAt,
	}
}
