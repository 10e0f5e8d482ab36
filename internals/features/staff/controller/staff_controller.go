package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authzService "checkkid_backend/internals/features/authz/service"
	"checkkid_backend/internals/features/staff/dto"
	"checkkid_backend/internals/features/staff/model"
	helper "checkkid_backend/internals/helpers"
)

type StaffController struct {
	DB    *gorm.DB
	Authz *authzService.AuthorizationService
}

func NewStaffController(db *gorm.DB) *StaffController {
	return &StaffController{
		DB:    db,
		Authz: authzService.NewAuthorizationService(db),
	}
}

// POST /api/staff — boss of the kindergarten provisions a staff profile.
// The invite code is stored hashed; the plaintext goes out of band.
func (ctrl *StaffController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.ValidateStruct(c, req); err != nil {
		return err
	}

	if !ctrl.Authz.CanManageStaff(userID, req.KindergartenID) {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not allowed to manage staff here")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.InviteCode), bcrypt.DefaultCost)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	hashStr := string(hash)

	staff := model.StaffModel{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		EmployeeID:     req.EmployeeID,
		PhoneNumber:    req.PhoneNumber,
		Position:       req.Position,
		IsAdmin:        req.IsAdmin,
		KindergartenID: &req.KindergartenID,
		InviteCodeHash: &hashStr,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&staff).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Staff profile created", dto.FromStaffModel(staff))
}

// GET /api/staff/me
func (ctrl *StaffController) Me(c *fiber.Ctx) error {
	staffID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var staff model.StaffModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&staff, "id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Staff profile not found")
		}
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Staff profile", dto.FromStaffModel(staff))
}

// GET /api/staff/kindergarten/:kindergartenId
func (ctrl *StaffController) ByKindergarten(c *fiber.Ctx) error {
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

	var staff []model.StaffModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("kindergarten_id = ?", kindergartenID).
		Order("last_name, first_name").
		Find(&staff).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Staff", dto.FromStaffModels(staff))
}

// PUT /api/staff/:id — boss only; the admin flag lives here too.
func (ctrl *StaffController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	staffID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var staff model.StaffModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&staff, "id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Staff profile not found")
		}
		return helper.FromFiberError(c, err)
	}
	if staff.KindergartenID == nil || !ctrl.Authz.CanManageStaff(userID, *staff.KindergartenID) {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not allowed to manage staff here")
	}

	var req dto.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.ValidateStruct(c, req); err != nil {
		return err
	}

	updates := map[string]any{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.IsAdmin != nil {
		updates["is_admin"] = *req.IsAdmin
	}
	if len(updates) > 0 {
		if err := ctrl.DB.WithContext(c.UserContext()).
			Model(&staff).Updates(updates).Error; err != nil {
			return helper.FromFiberError(c, err)
		}
	}
	return helper.JsonUpdated(c, "Staff profile updated", dto.FromStaffModel(staff))
}

// DELETE /api/staff/:id
func (ctrl *StaffController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	staffID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var staff model.StaffModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&staff, "id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Staff profile not found")
		}
		return helper.FromFiberError(c, err)
	}
	if staff.KindergartenID == nil || !ctrl.Authz.CanManageStaff(userID, *staff.KindergartenID) {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not allowed to manage staff here")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Delete(&staff).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Staff profile deleted", fiber.Map{"id": staffID})
}
