package dto

import (
	"time"

	"github.com/google/uuid"

	model "checkkid_backend/internals/features/absences/model"
)

/* ===================== REQUESTS ===================== */

type CreateAbsenceRequest struct {
	ChildID   uuid.UUID `json:"child_id" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	Type      string    `json:"type" validate:"required,oneof=PLANNED UNPLANNED"`
	Reason    *string   `json:"reason" validate:"omitempty,max=500"`
}

/* ===================== RESPONSES ===================== */

type AbsenceResponse struct {
	ID        uuid.UUID `json:"id"`
	ChildID   uuid.UUID `json:"child_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	Type   model.AbsenceType   `json:"type"`
	Status model.AbsenceStatus `json:"status"`
	Reason *string             `json:"reason,omitempty"`

	ReportedBy     uuid.UUID `json:"reported_by"`
	ReportedByType string    `json:"reported_by_type"`

	ApprovedByStaff *uuid.UUID `json:"approved_by_staff,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func FromAbsenceModel(m model.AbsenceModel) AbsenceResponse {
	return AbsenceResponse{
		ID:              m.ID,
		ChildID:         m.ChildID,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		Type:            m.Type,
		Status:          m.Status,
		Reason:          m.Reason,
		ReportedBy:      m.ReportedBy,
		ReportedByType:  m.ReportedByType,
		ApprovedByStaff: m.ApprovedByStaff,
		ApprovedAt:      m.ApprovedAt,
		CreatedAt:       m.CreatedAt,
	}
}

func FromAbsenceModels(ms []model.AbsenceModel) []AbsenceResponse {
	out := make([]AbsenceResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromAbsenceModel(m))
	}
	return out
}
