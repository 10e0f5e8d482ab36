package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authzService "checkkid_backend/internals/features/authz/service"
	"checkkid_backend/internals/features/children/permissions/dto"
	"checkkid_backend/internals/features/children/permissions/model"
	helper "checkkid_backend/internals/helpers"
)

type ChildPermissionsController struct {
	DB    *gorm.DB
	Authz *authzService.AuthorizationService
}

func NewChildPermissionsController(db *gorm.DB) *ChildPermissionsController {
	return &ChildPermissionsController{
		DB:    db,
		Authz: authzService.NewAuthorizationService(db),
	}
}

// GET /api/permissions/child/:childId
func (ctrl *ChildPermissionsController) ByChild(c *fiber.Ctx) error {
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

	var perms model.ChildPermissionsModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&perms, "child_id = ?", childID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "No consent record for this child")
		}
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Consent record", dto.FromChildPermissionsModel(perms))
}

// PUT /api/permissions/child/:childId — create or update; consent changes are
// a parent (or boss) action, same gate as health data.
func (ctrl *ChildPermissionsController) Upsert(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	childID, err := helper.ParseUUIDParam(c, "childId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !ctrl.Authz.CanEditHealthData(userID, childID) {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not allowed to change consent for this child")
	}

	var req dto.UpsertChildPermissionsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.ValidateStruct(c, req); err != nil {
		return err
	}

	profileID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var perms model.ChildPermissionsModel
	now := time.Now()
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&perms, "child_id = ?", childID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			perms = model.ChildPermissionsModel{ChildID: childID}
		} else if err != nil {
			return err
		}

		applyBool(&perms.AllowPhotography, req.AllowPhotography)
		applyBool(&perms.AllowPictureSharing, req.AllowPictureSharing)
		applyBool(&perms.AllowSocialMediaPosts, req.AllowSocialMediaPosts)
		applyBool(&perms.AllowTrips, req.AllowTrips)
		applyBool(&perms.AllowPublicNameSharing, req.AllowPublicNameSharing)
		perms.ConsentGivenBy = &profileID
		perms.ConsentGivenAt = &now

		return tx.Save(&perms).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Consent updated", dto.FromChildPermissionsModel(perms))
}

func applyBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
