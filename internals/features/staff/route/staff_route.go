package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"checkkid_backend/internals/constants"
	"checkkid_backend/internals/features/staff/controller"
	authMw "checkkid_backend/internals/middlewares/auth"
)

func StaffRoutes(r fiber.Router, db *gorm.DB) {
	staffController := controller.NewStaffController(db)

	staff := r.Group("/staff", authMw.OnlyRoles("Staff access required", constants.RoleStaff, constants.RoleBoss))
	staff.Get("/me", staffController.Me)
	staff.Get("/kindergarten/:kindergartenId", staffController.ByKindergarten)

	// provisioning and role changes are scope-checked against the boss's
	// kindergarten inside the controller
	staff.Post("/", staffController.Create)
	staff.Put("/:id", staffController.Update)
	staff.Delete("/:id", staffController.Delete)
}
