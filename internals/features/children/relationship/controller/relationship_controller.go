package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authzService "checkkid_backend/internals/features/authz/service"
	"checkkid_backend/internals/features/children/relationship/dto"
	"checkkid_backend/internals/features/children/relationship/model"
	helper "checkkid_backend/internals/helpers"
)

type RelationshipController struct {
	DB    *gorm.DB
	Authz *authzService.AuthorizationService
}

func NewRelationshipController(db *gorm.DB) *RelationshipController {
	return &RelationshipController{
		DB:    db,
		Authz: authzService.NewAuthorizationService(db),
	}
}

// POST /api/relationships — privileged staff at the child's kindergarten.
// The (parent_id, child_id) unique index rejects duplicates.
func (ctrl *RelationshipController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateRelationshipRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.ValidateStruct(c, req); err != nil {
		return err
	}

	if !ctrl.Authz.CanEditChild(userID, req.ChildID) {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not allowed to manage this child's relationships")
	}

	rel := model.ParentChildModel{
		ParentID:               req.ParentID,
		ChildID:                req.ChildID,
		RelationshipType:       req.RelationshipType,
		CanPickup:              boolOr(req.CanPickup, true),
		CanDropOff:             boolOr(req.CanDropOff, true),
		IsPrimaryContact:       boolOr(req.IsPrimaryContact, false),
		RequiresIDVerification: boolOr(req.RequiresIDVerification, false),
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&rel).Error; err != nil {
		if isDuplicateKey(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Relationship already exists")
		}
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Relationship created", dto.FromRelationshipModel(rel))
}

// GET /api/relationships/child/:childId
func (ctrl *RelationshipController) ByChild(c *fiber.Ctx) error {
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

	var rels []model.ParentChildModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("child_id = ?", childID).
		Find(&rels).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Relationships", dto.FromRelationshipModels(rels))
}

// GET /api/relationships/mine — the calling parent's own links
func (ctrl *RelationshipController) Mine(c *fiber.Ctx) error {
	parentID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rels []model.ParentChildModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("parent_id = ?", parentID).
		Find(&rels).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Relationships", dto.FromRelationshipModels(rels))
}

// PUT /api/relationships/:id
func (ctrl *RelationshipController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	relID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rel model.ParentChildModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&rel, "id = ?", relID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Relationship not found")
		}
		return helper.FromFiberError(c, err)
	}

	if !ctrl.Authz.CanEditChild(userID, rel.ChildID) {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not allowed to manage this child's relationships")
	}

	var req dto.UpdateRelationshipRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := helper.ValidateStruct(c, req); err != nil {
		return err
	}

	updates := map[string]any{}
	if req.RelationshipType != nil {
		updates["relationship_type"] = *req.RelationshipType
	}
	if req.CanPickup != nil {
		updates["can_pickup"] = *req.CanPickup
	}
	if req.CanDropOff != nil {
		updates["can_drop_off"] = *req.CanDropOff
	}
	if req.IsPrimaryContact != nil {
		updates["is_primary_contact"] = *req.IsPrimaryContact
	}
	if req.RequiresIDVerification != nil {
		updates["requires_id_verification"] = *req.RequiresIDVerification
	}
	if len(updates) > 0 {
		if err := ctrl.DB.WithContext(c.UserContext()).
			Model(&rel).Updates(updates).Error; err != nil {
			return helper.FromFiberError(c, err)
		}
	}
	return helper.JsonUpdated(c, "Relationship updated", dto.FromRelationshipModel(rel))
}

// DELETE /api/relationships/:id
func (ctrl *RelationshipController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	relID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rel model.ParentChildModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&rel, "id = ?", relID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Relationship not found")
		}
		return helper.FromFiberError(c, err)
	}
	if !ctrl.Authz.CanEditChild(userID, rel.ChildID) {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not allowed to manage this child's relationships")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Delete(&rel).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Relationship deleted", fiber.Map{"id": relID})
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "23505")
}
