package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"checkkid_backend/internals/features/children/permissions/controller"
)

func ChildPermissionsRoutes(r fiber.Router, db *gorm.DB) {
	permissionsController := controller.NewChildPermissionsController(db)

	permissions := r.Group("/permissions")
	permissions.Get("/child/:childId", permissionsController.ByChild)
	permissions.Put("/child/:childId", permissionsController.Upsert)
}
