package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"checkkid_backend/internals/constants"
	"checkkid_backend/internals/features/absences/controller"
	authMw "checkkid_backend/internals/middlewares/auth"
)

func AbsenceRoutes(r fiber.Router, db *gorm.DB) {
	absenceController := controller.NewAbsenceController(db)

	absences := r.Group("/absences")

	absences.Post("/", absenceController.Create)
	absences.Get("/child/:childId", absenceController.ByChild)

	staffOnly := authMw.OnlyRoles("Staff access required", constants.RoleStaff, constants.RoleBoss)
	absences.Post("/:id/approve", staffOnly, absenceController.Approve)
	absences.Post("/:id/reject", staffOnly, absenceController.Reject)

	bossOnly := authMw.OnlyRoles("Boss access required", constants.RoleBoss)
	absences.Delete("/:id", bossOnly, absenceController.Delete)
}
