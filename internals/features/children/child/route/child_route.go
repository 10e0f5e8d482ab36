package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"checkkid_backend/internals/features/children/child/controller"
)

func ChildRoutes(r fiber.Router, db *gorm.DB) {
	childController := controller.NewChildController(db)

	children := r.Group("/children")
	children.Post("/", childController.Create)
	children.Get("/mine", childController.Mine)
	children.Get("/kindergarten/:kindergartenId", childController.ByKindergarten)
	children.Get("/:id", childController.GetByID)
	children.Put("/:id", childController.Update)
	children.Delete("/:id", childController.Delete)
}
