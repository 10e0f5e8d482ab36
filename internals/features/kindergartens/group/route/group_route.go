package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"checkkid_backend/internals/constants"
	"checkkid_backend/internals/features/kindergartens/group/controller"
	authMw "checkkid_backend/internals/middlewares/auth"
)

func GroupRoutes(r fiber.Router, db *gorm.DB) {
	groupController := controller.NewGroupController(db)

	staffOnly := authMw.OnlyRoles("Staff access required", constants.RoleStaff, constants.RoleBoss)

	groups := r.Group("/groups", staffOnly)
	groups.Post("/", groupController.Create)
	groups.Get("/kindergarten/:kindergartenId", groupController.ByKindergarten)
	groups.Put("/:id", groupController.Update)
	groups.Delete("/:id", groupController.Delete)

	groups.Get("/:id/staff", groupController.StaffAssignments)
	groups.Post("/:id/staff", groupController.AssignStaff)
	groups.Delete("/:id/staff/:staffId", groupController.UnassignStaff)

	groups.Post("/:id/children", groupController.AssignChild)
}
