package dto

import (
	"time"

	"github.com/google/uuid"

	model "checkkid_backend/internals/features/presence/model"
)

/* ===================== REQUESTS ===================== */

type CheckInRequest struct {
	ChildID             uuid.UUID  `json:"child_id" validate:"required"`
	DroppedOffBy        *uuid.UUID `json:"dropped_off_by" validate:"omitempty"`
	DroppedOffByType    string     `json:"dropped_off_by_type" validate:"required,oneof=PARENT STAFF OTHER"`
	DroppedOffByName    *string    `json:"dropped_off_by_name" validate:"omitempty,max=255"`
	Notes               *string    `json:"notes" validate:"omitempty"`
}

type CheckOutRequest struct {
	ChildID           uuid.UUID  `json:"child_id" validate:"required"`
	PickedUpBy        *uuid.UUID `json:"picked_up_by" validate:"omitempty"`
	PickedUpByType    string     `json:"picked_up_by_type" validate:"required,oneof=PARENT STAFF OTHER"`
	PickedUpByName    *string    `json:"picked_up_by_name" validate:"omitempty,max=255"`
	PickedUpConfirmed bool       `json:"picked_up_confirmed"`
	Notes             *string    `json:"notes" validate:"omitempty"`
}

/* ===================== RESPONSES ===================== */

type CheckInOutResponse struct {
	ID      uuid.UUID `json:"id"`
	ChildID uuid.UUID `json:"child_id"`

	CheckInTime       time.Time  `json:"check_in_time"`
	DroppedOffBy      *uuid.UUID `json:"dropped_off_by,omitempty"`
	DroppedOffByType  string     `json:"dropped_off_by_type"`
	DroppedOffByName  *string    `json:"dropped_off_by_name,omitempty"`
	ConfirmedByStaff  *uuid.UUID `json:"confirmed_by_staff,omitempty"`

	CheckOutTime     *time.Time `json:"check_out_time,omitempty"`
	PickedUpBy       *uuid.UUID `json:"picked_up_by,omitempty"`
	PickedUpByType   *string    `json:"picked_up_by_type,omitempty"`
	PickedUpByName   *string    `json:"picked_up_by_name,omitempty"`
	ApprovedByStaff  *uuid.UUID `json:"approved_by_staff,omitempty"`
	IDVerified       bool       `json:"id_verified"`

	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func FromCheckInOutModel(m model.CheckInOutModel) CheckInOutResponse {
	return CheckInOutResponse{
		ID:               m.ID,
		ChildID:          m.ChildID,
		CheckInTime:      m.CheckInTime,
		DroppedOffBy:     m.DroppedOffBy,
		DroppedOffByType: m.DroppedOffByType,
		DroppedOffByName: m.DroppedOffByName,
		ConfirmedByStaff: m.CheckInConfirmedByStaff,
		CheckOutTime:     m.CheckOutTime,
		PickedUpBy:       m.PickedUpBy,
		PickedUpByType:   m.PickedUpByType,
		PickedUpByName:   m.PickedUpByName,
		ApprovedByStaff:  m.CheckOutApprovedByStaff,
		IDVerified:       m.IDVerified,
		Notes:            m.Notes,
		CreatedAt:        m.CreatedAt,
	}
}

func FromCheckInOutModels(ms []model.CheckInOutModel) []CheckInOutResponse {
	out := make([]CheckInOutResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromCheckInOutModel(m))
	}
	return out
}
