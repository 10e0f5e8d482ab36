package dto

import (
	"time"

	"github.com/google/uuid"

	model "checkkid_backend/internals/features/children/permissions/model"
)

type UpsertChildPermissionsRequest struct {
	AllowPhotography       *bool `json:"allow_photography" validate:"omitempty"`
	AllowPictureSharing    *bool `json:"allow_picture_sharing" validate:"omitempty"`
	AllowSocialMediaPosts  *bool `json:"allow_social_media_posts" validate:"omitempty"`
	AllowTrips             *bool `json:"allow_trips" validate:"omitempty"`
	AllowPublicNameSharing *bool `json:"allow_public_name_sharing" validate:"omitempty"`
}

type ChildPermissionsResponse struct {
	ID                     uuid.UUID  `json:"id"`
	ChildID                uuid.UUID  `json:"child_id"`
	AllowPhotography       bool       `json:"allow_photography"`
	AllowPictureSharing    bool       `json:"allow_picture_sharing"`
	AllowSocialMediaPosts  bool       `json:"allow_social_media_posts"`
	AllowTrips             bool       `json:"allow_trips"`
	AllowPublicNameSharing bool       `json:"allow_public_name_sharing"`
	ConsentGivenBy         *uuid.UUID `json:"consent_given_by,omitempty"`
	ConsentGivenAt         *time.Time `json:"consent_given_at,omitempty"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

func FromChildPermissionsModel(m model.ChildPermissionsModel) ChildPermissionsResponse {
	return ChildPermissionsResponse{
		ID:                     m.ID,
		ChildID:                m.ChildID,
		AllowPhotography:       m.AllowPhotography,
		AllowPictureSharing:    m.AllowPictureSharing,
		AllowSocialMediaPosts:  m.AllowSocialMediaPosts,
		AllowTrips:             m.AllowTrips,
		AllowPublicNameSharing: m.AllowPublicNameSharing,
		ConsentGivenBy:         m.ConsentGivenBy,
		ConsentGivenAt:         m.ConsentGivenAt,
		UpdatedAt:              m.UpdatedAt,
	}
}
