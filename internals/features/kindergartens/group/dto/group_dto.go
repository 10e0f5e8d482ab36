package dto

import (
	"time"

	"github.com/google/uuid"

	model "checkkid_backend/internals/features/kindergartens/group/model"
)

/* =========================================================
   REQUESTS
========================================================= */

type CreateGroupRequest struct {
	Name           string    `json:"name" validate:"required,max=100"`
	Description    *string   `json:"description" validate:"omitempty,max=500"`
	KindergartenID uuid.UUID `json:"kindergarten_id" validate:"required"`
	AgeRange       *string   `json:"age_range" validate:"omitempty,max=50"`
	MaxCapacity    *int      `json:"max_capacity" validate:"omitempty,min=1"`
}

func (r CreateGroupRequest) ToModel() model.GroupModel {
	return model.GroupModel{
		Name:           r.Name,
		Description:    r.Description,
		KindergartenID: r.KindergartenID,
		AgeRange:       r.AgeRange,
		MaxCapacity:    r.MaxCapacity,
	}
}

type UpdateGroupRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	AgeRange    *string `json:"age_range" validate:"omitempty,max=50"`
	MaxCapacity *int    `json:"max_capacity" validate:"omitempty,min=1"`
}

type AssignStaffRequest struct {
	StaffID       uuid.UUID `json:"staff_id" validate:"required"`
	IsResponsible bool      `json:"is_responsible"`
}

type AssignChildRequest struct {
	ChildID uuid.UUID `json:"child_id" validate:"required"`
}

/* =========================================================
   RESPONSES
========================================================= */

type GroupResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description,omitempty"`
	KindergartenID uuid.UUID `json:"kindergarten_id"`
	AgeRange       *string   `json:"age_range,omitempty"`
	MaxCapacity    *int      `json:"max_capacity,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromGroupModel(m model.GroupModel) GroupResponse {
	return GroupResponse{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		KindergartenID: m.KindergartenID,
		AgeRange:       m.AgeRange,
		MaxCapacity:    m.MaxCapacity,
		CreatedAt:      m.CreatedAt,
	}
}

func FromGroupModels(ms []model.GroupModel) []GroupResponse {
	out := make([]GroupResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromGroupModel(m))
	}
	return out
}

type StaffAssignmentResponse struct {
	ID            uuid.UUID `json:"id"`
	StaffID       uuid.UUID `json:"staff_id"`
	GroupID       uuid.UUID `json:"group_id"`
	IsResponsible bool      `json:"is_responsible"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromStaffAssignmentModel(m model.StaffGroupAssignmentModel) StaffAssignmentResponse {
	return StaffAssignmentResponse{
		ID:            m.ID,
		StaffID:       m.StaffID,
		GroupID:       m.GroupID,
		IsResponsible: m.IsResponsible,
		CreatedAt:     m.CreatedAt,
	}
}

func FromStaffAssignmentModels(ms []model.StaffGroupAssignmentModel) []StaffAssignmentResponse {
	out := make([]StaffAssignmentResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromStaffAssignmentModel(m))
	}
	return out
}
