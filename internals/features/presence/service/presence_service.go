package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	childModel "checkkid_backend/internals/features/children/child/model"
	"checkkid_backend/internals/features/presence/dto"
	"checkkid_backend/internals/features/presence/model"
)

// PresenceService owns the check-in/check-out lifecycle. Authorization is the
// caller's job (controller asks the authorization service first); this layer
// enforces the session state machine itself.
type PresenceService struct {
	DB *gorm.DB
}

func NewPresenceService(db *gorm.DB) *PresenceService {
	return &PresenceService{DB: db}
}

// CheckIn opens a new presence session. The "at most one open session per
// child" rule is enforced by the partial unique index, so two concurrent
// check-ins cannot both succeed: the loser gets a duplicate-key error which
// we surface as a 409.
func (s *PresenceService) CheckIn(ctx context.Context, req dto.CheckInRequest, confirmedByStaff *uuid.UUID) (*model.CheckInOutModel, error) {
	log.Printf("[presence] check-in child=%s", req.ChildID)

	session := model.CheckInOutModel{
		ChildID:                 req.ChildID,
		CheckInTime:             time.Now(),
		DroppedOffBy:            req.DroppedOffBy,
		DroppedOffByType:        req.DroppedOffByType,
		DroppedOffByName:        req.DroppedOffByName,
		CheckInConfirmedByStaff: confirmedByStaff,
		Notes:                   req.Notes,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			if isDuplicateKey(err) {
				return fiber.NewError(fiber.StatusConflict, "Child is already checked in")
			}
			return err
		}
		// keep the denormalized flag in the same transaction
		return tx.Model(&childModel.ChildModel{}).
			Where("id = ?", req.ChildID).
			Update("checked_in", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ConfirmCheckIn lets a staff member confirm a parent-initiated check-in.
// Idempotent: confirming an already confirmed open session is a no-op.
func (s *PresenceService) ConfirmCheckIn(ctx context.Context, sessionID, staffID uuid.UUID) (*model.CheckInOutModel, error) {
	var session model.CheckInOutModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&session, "id = ? AND check_out_time IS NULL", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "No open session with that id")
			}
			return err
		}
		if session.CheckInConfirmedByStaff != nil {
			return nil // already confirmed
		}
		session.CheckInConfirmedByStaff = &staffID
		return tx.Model(&session).Update("check_in_confirmed_by_staff", staffID).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// CheckOut closes the child's open session. Closed sessions never reopen;
// a child without an open session is simply "not checked in".
func (s *PresenceService) CheckOut(ctx context.Context, req dto.CheckOutRequest, approvedByStaff *uuid.UUID) (*model.CheckInOutModel, error) {
	log.Printf("[presence] check-out child=%s", req.ChildID)

	var session model.CheckInOutModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&session, "child_id = ? AND check_out_time IS NULL", req.ChildID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Child is not checked in")
			}
			return err
		}

		now := time.Now()
		session.CheckOutTime = &now
		session.PickedUpBy = req.PickedUpBy
		session.PickedUpByType = &req.PickedUpByType
		session.PickedUpByName = req.PickedUpByName
		session.CheckOutApprovedByStaff = approvedByStaff
		session.IDVerified = req.PickedUpConfirmed
		session.Notes = appendNotes(session.Notes, req.Notes)

		if err := tx.Save(&session).Error; err != nil {
			return err
		}
		return tx.Model(&childModel.ChildModel{}).
			Where("id = ?", req.ChildID).
			Update("checked_in", false).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ActiveSession returns the child's open session, or nil when there is none.
func (s *PresenceService) ActiveSession(ctx context.Context, childID uuid.UUID) (*model.CheckInOutModel, error) {
	var session model.CheckInOutModel
	err := s.DB.WithContext(ctx).
		First(&session, "child_id = ? AND check_out_time IS NULL", childID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// History returns all sessions for the child, newest first.
func (s *PresenceService) History(ctx context.Context, childID uuid.UUID) ([]model.CheckInOutModel, error) {
	var sessions []model.CheckInOutModel
	err := s.DB.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("check_in_time DESC").
		Find(&sessions).Error
	return sessions, err
}

// ActiveCheckins returns every open session (the staff dashboard view).
func (s *PresenceService) ActiveCheckins(ctx context.Context) ([]model.CheckInOutModel, error) {
	var sessions []model.CheckInOutModel
	err := s.DB.WithContext(ctx).
		Where("check_out_time IS NULL").
		Order("check_in_time DESC").
		Find(&sessions).Error
	return sessions, err
}

// PendingConfirmations returns open, unconfirmed sessions for children in the
// kindergarten, newest first.
func (s *PresenceService) PendingConfirmations(ctx context.Context, kindergartenID uuid.UUID) ([]model.CheckInOutModel, error) {
	var sessions []model.CheckInOutModel
	err := s.DB.WithContext(ctx).
		Joins("JOIN children ON children.id = check_in_out_log.child_id").
		Where("children.kindergarten_id = ?", kindergartenID).
		Where("check_in_out_log.check_out_time IS NULL").
		Where("check_in_out_log.check_in_confirmed_by_staff IS NULL").
		Order("check_in_out_log.check_in_time DESC").
		Find(&sessions).Error
	return sessions, err
}

/* ===============================
   helpers
=============================== */

func appendNotes(existing, extra *string) *string {
	if extra == nil || *extra == "" {
		return existing
	}
	if existing == nil || *existing == "" {
		return extra
	}
	combined := *existing + " | " + *extra
	return &combined
}

// isDuplicateKey: Postgres unique violation (SQLSTATE 23505); the sqlite
// wording is included for the test DB.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "23505")
}
