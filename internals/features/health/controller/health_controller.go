package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authz "checkkid_backend/internals/features/authz/service"
	childModel "checkkid_backend/internals/features/children/child/model"
	"checkkid_backend/internals/features/health/dto"
	model "checkkid_backend/internals/features/health/model"
	helpers "checkkid_backend/internals/helpers"
)

type HealthController struct {
	DB    *gorm.DB
	Authz *authz.AuthorizationService
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db, Authz: authz.NewAuthorizationService(db)}
}

// ByChild returns the child's health record.
func (ctrl *HealthController) ByChild(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	childID, err := helpers.ParseUUIDParam(c, "childId")
	if err != nil {
		return err
	}

	if !ctrl.Authz.CanViewHealthData(userID, childID) {
		return helpers.JsonError(c, fiber.StatusForbidden, "Not allowed to view this child's health data")
	}

	var row model.HealthDataModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&row, "child_id = ?", childID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helpers.JsonError(c, fiber.StatusNotFound, "No health data recorded for this child")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch health data")
	}
	return helpers.JsonOK(c, "OK", dto.FromHealthDataModel(row))
}

// Upsert creates the record on first write and replaces it afterwards.
// The children.health_data_id mirror is kept in the same transaction.
func (ctrl *HealthController) Upsert(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	childID, err := helpers.ParseUUIDParam(c, "childId")
	if err != nil {
		return err
	}

	if !ctrl.Authz.CanEditHealthData(userID, childID) {
		return helpers.JsonError(c, fiber.StatusForbidden, "Not allowed to edit this child's health data")
	}

	var req dto.UpsertHealthDataRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helpers.ValidateStruct(c, &req); err != nil {
		return err
	}

	var row model.HealthDataModel
	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("child_id = ?", childID).First(&row).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			row = model.HealthDataModel{ChildID: childID}
		}
		req.Apply(&row)
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		return tx.Model(&childModel.ChildModel{}).
			Where("id = ?", childID).
			Update("health_data_id", row.ID).Error
	})
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to save health data")
	}
	return helpers.JsonUpdated(c, "Health data saved", dto.FromHealthDataModel(row))
}
