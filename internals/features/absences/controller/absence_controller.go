package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"checkkid_backend/internals/constants"
	"checkkid_backend/internals/features/absences/dto"
	"checkkid_backend/internals/features/absences/service"
	authzService "checkkid_backend/internals/features/authz/service"
	helper "checkkid_backend/internals/helpers"
)

type AbsenceController struct {
	DB      *gorm.DB
	Service *service.AbsenceService
	Authz   *authzService.AuthorizationService
}

func NewAbsenceController(db *gorm.DB) *AbsenceController {
	return &AbsenceController{
		DB:      db,
		Service: service.NewAbsenceService(db),
		Authz:   authzService.NewAuthorizationService(db),
	}
}

// POST /api/absences
func (ctrl *AbsenceController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateAbsenceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.ValidateStruct(c, req); err != nil {
		return err
	}

	// reporting an absence requires the same scope as seeing the child
	if !ctrl.Authz.CanViewChild(userID, req.ChildID) {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not allowed to report absence for this child")
	}

	reportedBy, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	reportedByType := ctrl.personType(c)

	absence, err := ctrl.Service.Create(c.UserContext(), req, reportedBy, reportedByType)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Absence registered", dto.FromAbsenceModel(*absence))
}

// POST /api/absences/:id/approve — staff role enforced on the route
func (ctrl *AbsenceController) Approve(c *fiber.Ctx) error {
	absenceID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	staffID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	absence, err := ctrl.Service.Approve(c.UserContext(), absenceID, staffID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Absence approved", dto.FromAbsenceModel(*absence))
}

// POST /api/absences/:id/reject
func (ctrl *AbsenceController) Reject(c *fiber.Ctx) error {
	absenceID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	staffID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	absence, err := ctrl.Service.Reject(c.UserContext(), absenceID, staffID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Absence rejected", dto.FromAbsenceModel(*absence))
}

// GET /api/absences/child/:childId
func (ctrl *AbsenceController) ByChild(c *fiber.Ctx) error {
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

	// optional ?start=YYYY-MM-DD&end=YYYY-MM-DD narrows to overlapping records
	startStr, endStr := c.Query("start"), c.Query("end")
	if startStr != "" && endStr != "" {
		start, err1 := time.Parse("2006-01-02", startStr)
		end, err2 := time.Parse("2006-01-02", endStr)
		if err1 != nil || err2 != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid date range")
		}
		absences, err := ctrl.Service.ByChildAndRange(c.UserContext(), childID, start, end)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		return helper.JsonList(c, "Absences", dto.FromAbsenceModels(absences))
	}

	absences, err := ctrl.Service.ByChild(c.UserContext(), childID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Absences", dto.FromAbsenceModels(absences))
}

// DELETE /api/absences/:id — boss only (route-level guard)
func (ctrl *AbsenceController) Delete(c *fiber.Ctx) error {
	absenceID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctrl.Service.Delete(c.UserContext(), absenceID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Absence deleted", fiber.Map{"id": absenceID})
}

func (ctrl *AbsenceController) personType(c *fiber.Ctx) string {
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return constants.PersonTypeOther
	}
	switch role {
	case constants.RoleStaff, constants.RoleBoss:
		return constants.PersonTypeStaff
	case constants.RoleParent:
		return constants.PersonTypeParent
	default:
		return constants.PersonTypeOther
	}
}
