package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"checkkid_backend/internals/constants"
	"checkkid_backend/internals/features/notes/controller"
	authMw "checkkid_backend/internals/middlewares/auth"
)

func NoteRoutes(r fiber.Router, db *gorm.DB) {
	noteController := controller.NewNoteController(db)

	staffOnly := authMw.OnlyRoles("Staff access required", constants.RoleStaff, constants.RoleBoss)

	notes := r.Group("/notes")
	notes.Post("/", staffOnly, noteController.Create)
	notes.Get("/child/:childId", noteController.ByChild)
	notes.Get("/kindergarten/:kindergartenId", staffOnly, noteController.ByKindergarten)
	notes.Delete("/:id", staffOnly, noteController.Delete)
}
