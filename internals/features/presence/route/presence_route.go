package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"checkkid_backend/internals/constants"
	"checkkid_backend/internals/features/presence/controller"
	authMw "checkkid_backend/internals/middlewares/auth"
)

func PresenceRoutes(r fiber.Router, db *gorm.DB) {
	presenceController := controller.NewPresenceController(db)

	checker := r.Group("/checker")

	// fine-grained checks live in the controller; parents can drop off
	checker.Post("/check-in", presenceController.CheckIn)
	checker.Get("/active/:childId", presenceController.ActiveSession)
	checker.Get("/history/:childId", presenceController.History)

	// staff-only surface
	staffOnly := authMw.OnlyRoles("Staff access required", constants.RoleStaff, constants.RoleBoss)
	checker.Post("/check-out", staffOnly, presenceController.CheckOut)
	checker.Post("/:id/confirm", staffOnly, presenceController.ConfirmCheckIn)
	checker.Get("/active", staffOnly, presenceController.ActiveCheckins)
	checker.Get("/pending/:kindergartenId", staffOnly, presenceController.PendingConfirmations)
}
