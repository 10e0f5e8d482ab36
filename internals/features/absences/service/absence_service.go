package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"checkkid_backend/internals/constants"
	"checkkid_backend/internals/features/absences/dto"
	"checkkid_backend/internals/features/absences/model"
	childModel "checkkid_backend/internals/features/children/child/model"
)

// AbsenceService owns the absence report lifecycle. Authorization is checked
// by the calling controller; this layer validates dates and drives the
// PENDING → APPROVED/REJECTED transitions.
type AbsenceService struct {
	DB *gorm.DB
}

func NewAbsenceService(db *gorm.DB) *AbsenceService {
	return &AbsenceService{DB: db}
}

// Create registers an absence. Staff reports and unplanned absences are
// auto-approved; only planned parent reports start PENDING. Auto-approval
// leaves ApprovedByStaff nil — it is not a staff decision.
func (s *AbsenceService) Create(ctx context.Context, req dto.CreateAbsenceRequest, reportedBy uuid.UUID, reportedByType string) (*model.AbsenceModel, error) {
	log.Printf("[absence] create child=%s %s..%s", req.ChildID,
		req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))

	var count int64
	if err := s.DB.WithContext(ctx).Model(&childModel.ChildModel{}).
		Where("id = ?", req.ChildID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "Child not found")
	}

	if req.EndDate.Before(req.StartDate) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "End date cannot be before start date")
	}

	status := model.AbsenceStatusPending
	if reportedByType == constants.PersonTypeStaff || model.AbsenceType(req.Type) == model.AbsenceTypeUnplanned {
		status = model.AbsenceStatusApproved
	}

	absence := model.AbsenceModel{
		ChildID:        req.ChildID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Type:           model.AbsenceType(req.Type),
		Status:         status,
		Reason:         req.Reason,
		ReportedBy:     reportedBy,
		ReportedByType: reportedByType,
	}

	if err := s.DB.WithContext(ctx).Create(&absence).Error; err != nil {
		return nil, err
	}
	return &absence, nil
}

// Approve records a staff decision. Decisions are re-decidable: approving a
// rejected absence flips it, last decision wins. Status, deciding staff and
// timestamp move in one transaction.
func (s *AbsenceService) Approve(ctx context.Context, absenceID, staffID uuid.UUID) (*model.AbsenceModel, error) {
	return s.decide(ctx, absenceID, staffID, model.AbsenceStatusApproved)
}

// Reject is the symmetric staff decision.
func (s *AbsenceService) Reject(ctx context.Context, absenceID, staffID uuid.UUID) (*model.AbsenceModel, error) {
	return s.decide(ctx, absenceID, staffID, model.AbsenceStatusRejected)
}

func (s *AbsenceService) decide(ctx context.Context, absenceID, staffID uuid.UUID, status model.AbsenceStatus) (*model.AbsenceModel, error) {
	log.Printf("[absence] %s absence=%s staff=%s", status, absenceID, staffID)

	var absence model.AbsenceModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&absence, "id = ?", absenceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Absence not found")
			}
			return err
		}

		now := time.Now()
		absence.Status = status
		absence.ApprovedByStaff = &staffID
		absence.ApprovedAt = &now

		return tx.Model(&absence).Updates(map[string]any{
			"status":            status,
			"approved_by_staff": staffID,
			"approved_at":       now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &absence, nil
}

func (s *AbsenceService) ByChild(ctx context.Context, childID uuid.UUID) ([]model.AbsenceModel, error) {
	var absences []model.AbsenceModel
	err := s.DB.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("start_date DESC").
		Find(&absences).Error
	return absences, err
}

// ByChildAndRange returns absences overlapping [start, end]: an interval
// overlaps when it starts before the range ends and ends after it starts.
func (s *AbsenceService) ByChildAndRange(ctx context.Context, childID uuid.UUID, start, end time.Time) ([]model.AbsenceModel, error) {
	var absences []model.AbsenceModel
	err := s.DB.WithContext(ctx).
		Where("child_id = ? AND start_date <= ? AND end_date >= ?", childID, end, start).
		Order("start_date DESC").
		Find(&absences).Error
	return absences, err
}

// IsChildAbsentOnDate reports whether any absence covers the given day.
func (s *AbsenceService) IsChildAbsentOnDate(ctx context.Context, childID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&model.AbsenceModel{}).
		Where("child_id = ? AND start_date <= ? AND end_date >= ?", childID, date, date).
		Count(&count).Error
	return count > 0, err
}

// Delete removes an absence for good. Reserved for boss-level callers; the
// controller enforces that.
func (s *AbsenceService) Delete(ctx context.Context, absenceID uuid.UUID) error {
	res := s.DB.WithContext(ctx).Delete(&model.AbsenceModel{}, "id = ?", absenceID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Absence not found")
	}
	return nil
}
