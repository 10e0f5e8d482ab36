package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authz "checkkid_backend/internals/features/authz/service"
	childModel "checkkid_backend/internals/features/children/child/model"
	"checkkid_backend/internals/features/notes/dto"
	model "checkkid_backend/internals/features/notes/model"
	helpers "checkkid_backend/internals/helpers"
)

type NoteController struct {
	DB    *gorm.DB
	Authz *authz.AuthorizationService
}

func NewNoteController(db *gorm.DB) *NoteController {
	return &NoteController{DB: db, Authz: authz.NewAuthorizationService(db)}
}

// POST /api/notes
// A note targets either a child or a whole kindergarten, never both.
func (ctrl *NoteController) Create(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helpers.ValidateStruct(c, &req); err != nil {
		return err
	}
	if (req.ChildID == nil) == (req.KindergartenID == nil) {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Provide exactly one of child_id or kindergarten_id")
	}

	kindergartenID := req.KindergartenID
	if req.ChildID != nil {
		var child childModel.ChildModel
		if err := ctrl.DB.WithContext(c.Context()).
			First(&child, "id = ?", *req.ChildID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return helpers.JsonError(c, fiber.StatusNotFound, "Child not found")
			}
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch child")
		}
		if child.KindergartenID == nil {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Child is not enrolled at a kindergarten")
		}
		kindergartenID = child.KindergartenID
	}

	if !ctrl.Authz.CanAddNotes(userID, *kindergartenID) {
		return helpers.JsonError(c, fiber.StatusForbidden, "Not allowed to add notes here")
	}

	createdBy, err := helpers.GetProfileIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	row := model.NoteModel{
		ChildID:        req.ChildID,
		KindergartenID: req.KindergartenID,
		NoteDate:       req.NoteDate,
		Content:        req.Content,
		Category:       req.Category,
		CreatedBy:      createdBy,
		CreatedByType:  "STAFF",
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&row).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create note")
	}
	return helpers.JsonCreated(c, "Note created", dto.FromNoteModel(row))
}

// GET /api/notes/child/:childId?start=2025-09-01&end=2025-09-30
func (ctrl *NoteController) ByChild(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	childID, err := helpers.ParseUUIDParam(c, "childId")
	if err != nil {
		return err
	}

	if !ctrl.Authz.CanViewChild(userID, childID) {
		return helpers.JsonError(c, fiber.StatusForbidden, "Not allowed to view this child's notes")
	}

	q := ctrl.DB.WithContext(c.Context()).Where("child_id = ?", childID)
	q, err = applyDateRange(c, q)
	if err != nil {
		return err
	}

	var rows []model.NoteModel
	if err := q.Order("note_date DESC, created_at DESC").Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch notes")
	}
	return helpers.JsonList(c, "OK", dto.FromNoteModels(rows))
}

// GET /api/notes/kindergarten/:kindergartenId
func (ctrl *NoteController) ByKindergarten(c *fiber.Ctx) error {
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

	q := ctrl.DB.WithContext(c.Context()).Where("kindergarten_id = ?", kindergartenID)
	q, err = applyDateRange(c, q)
	if err != nil {
		return err
	}

	var rows []model.NoteModel
	if err := q.Order("note_date DESC, created_at DESC").Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch notes")
	}
	return helpers.JsonList(c, "OK", dto.FromNoteModels(rows))
}

// DELETE /api/notes/:id — authors may remove their own notes; a boss may
// remove any note in their kindergarten's scope.
func (ctrl *NoteController) Delete(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var row model.NoteModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&row, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helpers.JsonError(c, fiber.StatusNotFound, "Note not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch note")
	}

	profileID, err := helpers.GetProfileIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	allowed := row.CreatedBy == profileID
	if !allowed && row.KindergartenID != nil {
		allowed = ctrl.Authz.IsBossAt(userID, *row.KindergartenID)
	}
	if !allowed && row.ChildID != nil {
		if child, ok := ctrl.childOf(c, *row.ChildID); ok && child.KindergartenID != nil {
			allowed = ctrl.Authz.IsBossAt(userID, *child.KindergartenID)
		}
	}
	if !allowed {
		return helpers.JsonError(c, fiber.StatusForbidden, "Not allowed to delete this note")
	}

	if err := ctrl.DB.WithContext(c.Context()).Delete(&row).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to delete note")
	}
	return helpers.JsonDeleted(c, "Note deleted", fiber.Map{"id": row.ID})
}

func (ctrl *NoteController) childOf(c *fiber.Ctx, childID interface{}) (*childModel.ChildModel, bool) {
	var child childModel.ChildModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&child, "id = ?", childID).Error; err != nil {
		return nil, false
	}
	return &child, true
}

func applyDateRange(c *fiber.Ctx, q *gorm.DB) (*gorm.DB, error) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" && endStr == "" {
		return q, nil
	}
	start, err1 := time.Parse("2006-01-02", startStr)
	end, err2 := time.Parse("2006-01-02", endStr)
	if err1 != nil || err2 != nil {
		return nil, helpers.JsonError(c, fiber.StatusBadRequest, "start and end must both be YYYY-MM-DD")
	}
	return q.Where("note_date BETWEEN ? AND ?", start, end), nil
}
