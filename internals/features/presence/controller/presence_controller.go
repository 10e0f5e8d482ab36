package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authzService "checkkid_backend/internals/features/authz/service"
	"checkkid_backend/internals/features/presence/dto"
	"checkkid_backend/internals/features/presence/service"
	"checkkid_backend/internals/constants"
	helper "checkkid_backend/internals/helpers"
)

type PresenceController struct {
	DB       *gorm.DB
	Service  *service.PresenceService
	Authz    *authzService.AuthorizationService
}

func NewPresenceController(db *gorm.DB) *PresenceController {
	return &PresenceController{
		DB:      db,
		Service: service.NewPresenceService(db),
		Authz:   authzService.NewAuthorizationService(db),
	}
}

// POST /api/checker/check-in
func (ctrl *PresenceController) CheckIn(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.ValidateStruct(c, req); err != nil {
		return err
	}

	// authorization before any mutation
	if !ctrl.Authz.CanCheckIn(userID, req.ChildID) {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not allowed to check in this child")
	}

	// staff-initiated check-ins are confirmed at creation; parent ones wait
	// for a staff confirmation
	confirmedBy := ctrl.staffProfileID(c)

	session, err := ctrl.Service.CheckIn(c.UserContext(), req, confirmedBy)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Child checked in", dto.FromCheckInOutModel(*session))
}

// POST /api/checker/check-out
func (ctrl *PresenceController) CheckOut(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CheckOutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.ValidateStruct(c, req); err != nil {
		return err
	}

	if !ctrl.Authz.CanCheckOut(userID, req.ChildID) {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not allowed to check out this child")
	}

	approvedBy := ctrl.staffProfileID(c)

	session, err := ctrl.Service.CheckOut(c.UserContext(), req, approvedBy)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Child checked out", dto.FromCheckInOutModel(*session))
}

// POST /api/checker/:id/confirm
func (ctrl *PresenceController) ConfirmCheckIn(c *fiber.Ctx) error {
	sessionID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	staffID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	session, err := ctrl.Service.ConfirmCheckIn(c.UserContext(), sessionID, staffID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Check-in confirmed", dto.FromCheckInOutModel(*session))
}

// GET /api/checker/active/:childId
func (ctrl *PresenceController) ActiveSession(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	childID, err := helper.ParseUUIDParam(c, "childId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if !ctrl.Authz.CanViewChild(userID, childID) {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not allowed to view this child")
	}

	session, err := ctrl.Service.ActiveSession(c.UserContext(), childID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if session == nil {
		return helper.JsonOK(c, "No active session", nil)
	}
	return helper.JsonOK(c, "Active session", dto.FromCheckInOutModel(*session))
}

// GET /api/checker/history/:childId
func (ctrl *PresenceController) History(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	childID, err := helper.ParseUUIDParam(c, "childId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if !ctrl.Authz.CanViewChild(userID, childID) {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not allowed to view this child")
	}

	sessions, err := ctrl.Service.History(c.UserContext(), childID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Check-in history", dto.FromCheckInOutModels(sessions))
}

// GET /api/checker/active
func (ctrl *PresenceController) ActiveCheckins(c *fiber.Ctx) error {
	sessions, err := ctrl.Service.ActiveCheckins(c.UserContext())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Active check-ins", dto.FromCheckInOutModels(sessions))
}

// GET /api/checker/pending/:kindergartenId
func (ctrl *PresenceController) PendingConfirmations(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	kindergartenID, err := helper.ParseUUIDParam(c, "kindergartenId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if !ctrl.Authz.IsStaffAt(userID, kindergartenID) {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not staff at this kindergarten")
	}

	sessions, err := ctrl.Service.PendingConfirmations(c.UserContext(), kindergartenID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Pending confirmations", dto.FromCheckInOutModels(sessions))
}

// staffProfileID returns the caller's profile id when they hold a staff role,
// nil for parents and others.
func (ctrl *PresenceController) staffProfileID(c *fiber.Ctx) *uuid.UUID {
	role, err := helper.GetRoleFromToken(c)
	if err != nil || (role != constants.RoleStaff && role != constants.RoleBoss) {
		return nil
	}
	id, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return nil
	}
	return &id
}
