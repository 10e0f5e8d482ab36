package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"checkkid_backend/internals/features/health/controller"
)

func HealthDataRoutes(r fiber.Router, db *gorm.DB) {
	healthController := controller.NewHealthController(db)

	// per-child capability checks happen inside the controller
	health := r.Group("/health-data")
	health.Get("/child/:childId", healthController.ByChild)
	health.Put("/child/:childId", healthController.Upsert)
}
