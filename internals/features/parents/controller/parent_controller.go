package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"checkkid_backend/internals/features/parents/dto"
	"checkkid_backend/internals/features/parents/model"
	relModel "checkkid_backend/internals/features/children/relationship/model"
	helper "checkkid_backend/internals/helpers"
)

type ParentController struct {
	DB *gorm.DB
}

func NewParentController(db *gorm.DB) *ParentController {
	return &ParentController{DB: db}
}

// GET /api/parents/me
func (ctrl *ParentController) Me(c *fiber.Ctx) error {
	parentID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var parent model.ParentModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&parent, "id = ?", parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Parent profile not found")
		}
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Parent profile", dto.FromParentModel(parent))
}

// PUT /api/parents/me
func (ctrl *ParentController) UpdateMe(c *fiber.Ctx) error {
	parentID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateParentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.ValidateStruct(c, req); err != nil {
		return err
	}

	var parent model.ParentModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&parent, "id = ?", parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Parent profile not found")
		}
		return helper.FromFiberError(c, err)
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
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if len(updates) > 0 {
		if err := ctrl.DB.WithContext(c.UserContext()).
			Model(&parent).Updates(updates).Error; err != nil {
			return helper.FromFiberError(c, err)
		}
	}
	return helper.JsonUpdated(c, "Parent profile updated", dto.FromParentModel(parent))
}

// GET /api/parents/co-parents — other parents linked to the caller's children
func (ctrl *ParentController) CoParents(c *fiber.Ctx) error {
	parentID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var childIDs []string
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&relModel.ParentChildModel{}).
		Where("parent_id = ?", parentID).
		Pluck("child_id", &childIDs).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	if len(childIDs) == 0 {
		return helper.JsonList(c, "Co-parents", []dto.ParentResponse{})
	}

	var coParents []model.ParentModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Joins("JOIN parent_child_relationships r ON r.parent_id = parents.id").
		Where("r.child_id IN ? AND parents.id <> ?", childIDs, parentID).
		Distinct("parents.*").
		Find(&coParents).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Co-parents", dto.FromParentModels(coParents))
}
