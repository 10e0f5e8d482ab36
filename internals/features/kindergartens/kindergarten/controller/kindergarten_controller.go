package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authz "checkkid_backend/internals/features/authz/service"
	"checkkid_backend/internals/features/kindergartens/kindergarten/dto"
	model "checkkid_backend/internals/features/kindergartens/kindergarten/model"
	helpers "checkkid_backend/internals/helpers"
)

type KindergartenController struct {
	DB    *gorm.DB
	Authz *authz.AuthorizationService
}

func NewKindergartenController(db *gorm.DB) *KindergartenController {
	return &KindergartenController{DB: db, Authz: authz.NewAuthorizationService(db)}
}

/* =========================================================
   READ
========================================================= */

// GetAll lists every kindergarten. Any authenticated user may browse
// the directory, e.g. a parent looking for a place to register a child.
func (ctrl *KindergartenController) GetAll(c *fiber.Ctx) error {
	var rows []model.KindergartenModel
	if err := ctrl.DB.WithContext(c.Context()).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch kindergartens")
	}
	return helpers.JsonList(c, "OK", dto.FromKindergartenModels(rows))
}

func (ctrl *KindergartenController) GetByID(c *fiber.Ctx) error {
	id, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var row model.KindergartenModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&row, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helpers.JsonError(c, fiber.StatusNotFound, "Kindergarten not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch kindergarten")
	}
	return helpers.JsonOK(c, "OK", dto.FromKindergartenModel(row))
}

/* =========================================================
   WRITE
========================================================= */

func (ctrl *KindergartenController) Update(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if !ctrl.Authz.CanEditKindergarten(userID, id) {
		return helpers.JsonError(c, fiber.StatusForbidden, "Not allowed to edit this kindergarten")
	}

	var req dto.UpdateKindergartenRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helpers.ValidateStruct(c, &req); err != nil {
		return err
	}

	var row model.KindergartenModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&row, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helpers.JsonError(c, fiber.StatusNotFound, "Kindergarten not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch kindergarten")
	}

	if req.Name != nil {
		row.Name = *req.Name
	}
	if req.Address != nil {
		row.Address = req.Address
	}
	if req.PhoneNumber != nil {
		row.PhoneNumber = req.PhoneNumber
	}
	if req.Email != nil {
		row.Email = req.Email
	}
	if req.OpeningTime != nil {
		row.OpeningTime = req.OpeningTime
	}
	if req.ClosingTime != nil {
		row.ClosingTime = req.ClosingTime
	}

	if err := ctrl.DB.WithContext(c.Context()).Save(&row).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update kindergarten")
	}
	return helpers.JsonUpdated(c, "Kindergarten updated", dto.FromKindergartenModel(row))
}

// Delete closes the kindergarten down. Enrolled children, staff and groups
// keep their rows; only the organization record goes.
func (ctrl *KindergartenController) Delete(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if !ctrl.Authz.CanEditKindergarten(userID, id) {
		return helpers.JsonError(c, fiber.StatusForbidden, "Not allowed to edit this kindergarten")
	}

	res := ctrl.DB.WithContext(c.Context()).
		Delete(&model.KindergartenModel{}, "id = ?", id)
	if res.Error != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to delete kindergarten")
	}
	if res.RowsAffected == 0 {
		return helpers.JsonError(c, fiber.StatusNotFound, "Kindergarten not found")
	}
	return helpers.JsonDeleted(c, "Kindergarten deleted", fiber.Map{"id": id})
}
