package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"checkkid_backend/internals/constants"
	"checkkid_backend/internals/features/parents/controller"
	authMw "checkkid_backend/internals/middlewares/auth"
)

func ParentRoutes(r fiber.Router, db *gorm.DB) {
	parentController := controller.NewParentController(db)

	parents := r.Group("/parents", authMw.OnlyRoles("Parent access required", constants.RoleParent))
	parents.Get("/me", parentController.Me)
	parents.Put("/me", parentController.UpdateMe)
	parents.Get("/co-parents", parentController.CoParents)
}
