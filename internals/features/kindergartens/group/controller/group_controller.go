package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authz "checkkid_backend/internals/features/authz/service"
	childModel "checkkid_backend/internals/features/children/child/model"
	"checkkid_backend/internals/features/kindergartens/group/dto"
	model "checkkid_backend/internals/features/kindergartens/group/model"
	helpers "checkkid_backend/internals/helpers"
)

type GroupController struct {
	DB    *gorm.DB
	Authz *authz.AuthorizationService
}

func NewGroupController(db *gorm.DB) *GroupController {
	return &GroupController{DB: db, Authz: authz.NewAuthorizationService(db)}
}

func (ctrl *GroupController) findGroup(c *fiber.Ctx, id interface{}) (*model.GroupModel, error) {
	var row model.GroupModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&row, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, helpers.JsonError(c, fiber.StatusNotFound, "Group not found")
		}
		return nil, helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch group")
	}
	return &row, nil
}

/* =========================================================
   GROUP CRUD
========================================================= */

func (ctrl *GroupController) Create(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helpers.ValidateStruct(c, &req); err != nil {
		return err
	}

	if !ctrl.Authz.CanManageGroups(userID, req.KindergartenID) {
		return helpers.JsonError(c, fiber.StatusForbidden, "Not allowed to manage groups here")
	}

	row := req.ToModel()
	if err := ctrl.DB.WithContext(c.Context()).Create(&row).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create group")
	}
	return helpers.JsonCreated(c, "Group created", dto.FromGroupModel(row))
}

func (ctrl *GroupController) ByKindergarten(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	kindergartenID, err := helpers.ParseUUIDParam(c, "kindergartenId")
	if err != nil {
		return err
	}

	if !ctrl.Authz.IsStaffAt(userID, kindergartenID) {
		return helpers.JsonError(c, fiber.StatusForbidden, "Not a member of this kindergarten")
	}

	var rows []model.GroupModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("kindergarten_id = ?", kindergartenID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch groups")
	}
	return helpers.JsonList(c, "OK", dto.FromGroupModels(rows))
}

func (ctrl *GroupController) Update(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	row, err := ctrl.findGroup(c, id)
	if err != nil {
		return err
	}
	if !ctrl.Authz.CanManageGroups(userID, row.KindergartenID) {
		return helpers.JsonError(c, fiber.StatusForbidden, "Not allowed to manage groups here")
	}

	var req dto.UpdateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helpers.ValidateStruct(c, &req); err != nil {
		return err
	}

	if req.Name != nil {
		row.Name = *req.Name
	}
	if req.Description != nil {
		row.Description = req.Description
	}
	if req.AgeRange != nil {
		row.AgeRange = req.AgeRange
	}
	if req.MaxCapacity != nil {
		row.MaxCapacity = req.MaxCapacity
	}

	if err := ctrl.DB.WithContext(c.Context()).Save(row).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update group")
	}

	// Keep the denormalized group_name on children in sync with renames.
	if req.Name != nil {
		if err := ctrl.DB.WithContext(c.Context()).
			Model(&childModel.ChildModel{}).
			Where("group_id = ?", row.ID).
			Update("group_name", row.Name).Error; err != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update group members")
		}
	}
	return helpers.JsonUpdated(c, "Group updated", dto.FromGroupModel(*row))
}

func (ctrl *GroupController) Delete(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	row, err := ctrl.findGroup(c, id)
	if err != nil {
		return err
	}
	if !ctrl.Authz.CanManageGroups(userID, row.KindergartenID) {
		return helpers.JsonError(c, fiber.StatusForbidden, "Not allowed to manage groups here")
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&childModel.ChildModel{}).
			Where("group_id = ?", row.ID).
			Updates(map[string]interface{}{"group_id": nil, "group_name": nil}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", row.ID).
			Delete(&model.StaffGroupAssignmentModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(row).Error
	})
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to delete group")
	}
	return helpers.JsonDeleted(c, "Group deleted", fiber.Map{"id": row.ID})
}

/* =========================================================
   STAFF ASSIGNMENTS
========================================================= */

func (ctrl *GroupController) AssignStaff(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	groupID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	row, err := ctrl.findGroup(c, groupID)
	if err != nil {
		return err
	}
	if !ctrl.Authz.CanAssignStaff(userID, row.KindergartenID) {
		return helpers.JsonError(c, fiber.StatusForbidden, "Not allowed to assign staff here")
	}

	var req dto.AssignStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helpers.ValidateStruct(c, &req); err != nil {
		return err
	}

	assignment := model.StaffGroupAssignmentModel{
		StaffID:       req.StaffID,
		GroupID:       row.ID,
		IsResponsible: req.IsResponsible,
	}
	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		// re-assigning simply replaces the previous membership
		if err := tx.Where("staff_id = ? AND group_id = ?", req.StaffID, row.ID).
			Delete(&model.StaffGroupAssignmentModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&assignment).Error
	})
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to assign staff")
	}
	return helpers.JsonCreated(c, "Staff assigned", dto.FromStaffAssignmentModel(assignment))
}

func (ctrl *GroupController) UnassignStaff(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	groupID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	staffID, err := helpers.ParseUUIDParam(c, "staffId")
	if err != nil {
		return err
	}

	row, err := ctrl.findGroup(c, groupID)
	if err != nil {
		return err
	}
	if !ctrl.Authz.CanAssignStaff(userID, row.KindergartenID) {
		return helpers.JsonError(c, fiber.StatusForbidden, "Not allowed to assign staff here")
	}

	res := ctrl.DB.WithContext(c.Context()).
		Where("staff_id = ? AND group_id = ?", staffID, groupID).
		Delete(&model.StaffGroupAssignmentModel{})
	if res.Error != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to remove assignment")
	}
	if res.RowsAffected == 0 {
		return helpers.JsonError(c, fiber.StatusNotFound, "Assignment not found")
	}
	return helpers.JsonDeleted(c, "Staff unassigned", fiber.Map{"staff_id": staffID, "group_id": groupID})
}

func (ctrl *GroupController) StaffAssignments(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	groupID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	row, err := ctrl.findGroup(c, groupID)
	if err != nil {
		return err
	}
	if !ctrl.Authz.IsStaffAt(userID, row.KindergartenID) {
		return helpers.JsonError(c, fiber.StatusForbidden, "Not a member of this kindergarten")
	}

	var rows []model.StaffGroupAssignmentModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch assignments")
	}
	return helpers.JsonList(c, "OK", dto.FromStaffAssignmentModels(rows))
}

/* =========================================================
   CHILD PLACEMENT
========================================================= */

func (ctrl *GroupController) AssignChild(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	groupID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	row, err := ctrl.findGroup(c, groupID)
	if err != nil {
		return err
	}
	if !ctrl.Authz.CanManageGroups(userID, row.KindergartenID) {
		return helpers.JsonError(c, fiber.StatusForbidden, "Not allowed to manage groups here")
	}

	var req dto.AssignChildRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helpers.ValidateStruct(c, &req); err != nil {
		return err
	}

	var child childModel.ChildModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&child, "id = ?", req.ChildID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helpers.JsonError(c, fiber.StatusNotFound, "Child not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch child")
	}
	if child.KindergartenID == nil || *child.KindergartenID != row.KindergartenID {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Child is not enrolled at this kindergarten")
	}

	child.GroupID = &row.ID
	child.GroupName = &row.Name
	if err := ctrl.DB.WithContext(c.Context()).Save(&child).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to assign child")
	}
	return helpers.JsonUpdated(c, "Child assigned to group", fiber.Map{
		"child_id": child.ID,
		"group_id": row.ID,
	})
}
