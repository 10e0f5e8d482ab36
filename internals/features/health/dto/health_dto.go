package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	model "checkkid_backend/internals/features/health/model"
)

// UpsertHealthDataRequest replaces the child's record wholesale; partial
// updates on list fields are ambiguous, so callers always send the full set.
type UpsertHealthDataRequest struct {
	Allergies    []string       `json:"allergies" validate:"omitempty,dive,max=255"`
	Medications  []string       `json:"medications" validate:"omitempty,dive,max=255"`
	Vaccinations datatypes.JSON `json:"vaccinations"`

	DietaryRestrictions *string `json:"dietary_restrictions" validate:"omitempty,max=500"`
	DoctorName          *string `json:"doctor_name" validate:"omitempty,max=255"`
	DoctorPhone         *string `json:"doctor_phone" validate:"omitempty,max=20"`
	EmergencyNotes      *string `json:"emergency_notes" validate:"omitempty,max=1000"`
}

func (r UpsertHealthDataRequest) Apply(m *model.HealthDataModel) {
	m.Allergies = pq.StringArray(r.Allergies)
	m.Medications = pq.StringArray(r.Medications)
	m.Vaccinations = r.Vaccinations
	m.DietaryRestrictions = r.DietaryRestrictions
	m.DoctorName = r.DoctorName
	m.DoctorPhone = r.DoctorPhone
	m.EmergencyNotes = r.EmergencyNotes
}

type HealthDataResponse struct {
	ID      uuid.UUID `json:"id"`
	ChildID uuid.UUID `json:"child_id"`

	Allergies    []string       `json:"allergies"`
	Medications  []string       `json:"medications"`
	Vaccinations datatypes.JSON `json:"vaccinations,omitempty"`

	DietaryRestrictions *string `json:"dietary_restrictions,omitempty"`
	DoctorName          *string `json:"doctor_name,omitempty"`
	DoctorPhone         *string `json:"doctor_phone,omitempty"`
	EmergencyNotes      *string `json:"emergency_notes,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func FromHealthDataModel(m model.HealthDataModel) HealthDataResponse {
	return HealthDataResponse{
		ID:                  m.ID,
		ChildID:             m.ChildID,
		Allergies:           m.Allergies,
		Medications:         m.Medications,
		Vaccinations:        m.Vaccinations,
		DietaryRestrictions: m.DietaryRestrictions,
		DoctorName:          m.DoctorName,
		DoctorPhone:         m.DoctorPhone,
		EmergencyNotes:      m.EmergencyNotes,
		UpdatedAt:           m.UpdatedAt,
	}
}
