package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"checkkid_backend/internals/features/children/relationship/controller"
)

func RelationshipRoutes(r fiber.Router, db *gorm.DB) {
	relationshipController := controller.NewRelationshipController(db)

	relationships := r.Group("/relationships")
	relationships.Post("/", relationshipController.Create)
	relationships.Get("/mine", relationshipController.Mine)
	relationships.Get("/child/:childId", relationshipController.ByChild)
	relationships.Put("/:id", relationshipController.Update)
	relationships.Delete("/:id", relationshipController.Delete)
}
