package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"checkkid_backend/internals/constants"
	"checkkid_backend/internals/features/kindergartens/kindergarten/controller"
	authMw "checkkid_backend/internals/middlewares/auth"
)

func KindergartenRoutes(r fiber.Router, db *gorm.DB) {
	kindergartenController := controller.NewKindergartenController(db)

	kindergartens := r.Group("/kindergartens")
	kindergartens.Get("/", kindergartenController.GetAll)
	kindergartens.Get("/:id", kindergartenController.GetByID)

	bossOnly := authMw.OnlyRoles("Boss access required", constants.RoleBoss)
	kindergartens.Put("/:id", bossOnly, kindergartenController.Update)
	kindergartens.Delete("/:id", bossOnly, kindergartenController.Delete)
}
