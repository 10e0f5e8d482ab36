package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"checkkid_backend/internals/constants"
	authzService "checkkid_backend/internals/features/authz/service"
	"checkkid_backend/internals/features/children/child/dto"
	"checkkid_backend/internals/features/children/child/model"
	relModel "checkkid_backend/internals/features/children/relationship/model"
	helper "checkkid_backend/internals/helpers"
)

type ChildController struct {
	DB    *gorm.DB
	Authz *authzService.AuthorizationService
}

func NewChildController(db *gorm.DB) *ChildController {
	return &ChildController{
		DB:    db,
		Authz: authzService.NewAuthorizationService(db),
	}
}

// POST /api/children
// A parent registering their own child also gets the relationship row, in
// the same transaction so a half-registered child can never exist.
func (ctrl *ChildController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateChildRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.ValidateStruct(c, req); err != nil {
		return err
	}

	if !ctrl.Authz.CanAddChild(userID, req.KindergartenID) {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not allowed to add children here")
	}

	role, _ := helper.GetRoleFromToken(c)

	child := req.ToModel()
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(child).Error; err != nil {
			return err
		}
		if role == constants.RoleParent {
			parentID, err := helper.GetProfileIDFromToken(c)
			if err != nil {
				return err
			}
			rel := relModel.ParentChildModel{
				ParentID:         parentID,
				ChildID:          child.ID,
				RelationshipType: req.RelationshipType,
				CanPickup:        boolOr(req.CanPickup, true),
				CanDropOff:       boolOr(req.CanDropOff, true),
				IsPrimaryContact: true,
			}
			return tx.Create(&rel).Error
		}
		return nil
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Child registered", dto.FromChildModel(*child))
}

// GET /api/children/:id
func (ctrl *ChildController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	childID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if !ctrl.Authz.CanViewChild(userID, childID) {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not allowed to view this child")
	}

	var child model.ChildModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&child, "id = ?", childID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Child not found")
		}
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Child", dto.FromChildModel(child))
}

// GET /api/children/kindergarten/:kindergartenId
func (ctrl *ChildController) ByKindergarten(c *fiber.Ctx) error {
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

	var children []model.ChildModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("kindergarten_id = ?", kindergartenID).
		Order("last_name, first_name").
		Find(&children).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Children", dto.FromChildModels(children))
}

// GET /api/children/mine — the calling parent's children
func (ctrl *ChildController) Mine(c *fiber.Ctx) error {
	parentID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var children []model.ChildModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Joins("JOIN parent_child_relationships r ON r.child_id = children.id").
		Where("r.parent_id = ?", parentID).
		Order("last_name, first_name").
		Find(&children).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Children", dto.FromChildModels(children))
}

// PUT /api/children/:id
func (ctrl *ChildController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	childID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if !ctrl.Authz.CanEditChild(userID, childID) {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not allowed to edit this child")
	}

	var req dto.UpdateChildRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.ValidateStruct(c, req); err != nil {
		return err
	}

	var child model.ChildModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&child, "id = ?", childID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Child not found")
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
	if req.BirthDate != nil {
		updates["birth_date"] = *req.BirthDate
	}
	if req.GroupID != nil {
		updates["group_id"] = *req.GroupID
	}
	if req.GroupName != nil {
		updates["group_name"] = *req.GroupName
	}
	if len(updates) > 0 {
		if err := ctrl.DB.WithContext(c.UserContext()).
			Model(&child).Updates(updates).Error; err != nil {
			return helper.FromFiberError(c, err)
		}
	}
	return helper.JsonUpdated(c, "Child updated", dto.FromChildModel(child))
}

// DELETE /api/children/:id
func (ctrl *ChildController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	childID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if !ctrl.Authz.CanEditChild(userID, childID) {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not allowed to delete this child")
	}

	res := ctrl.DB.WithContext(c.UserContext()).Delete(&model.ChildModel{}, "id = ?", childID)
	if res.Error != nil {
		return helper.FromFiberError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Child not found")
	}
	return helper.JsonDeleted(c, "Child deleted", fiber.Map{"id": childID})
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
