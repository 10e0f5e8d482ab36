package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"checkkid_backend/internals/features/users/auth/controller"
)

// AuthRoutes registers the public auth endpoints; SecuredAuthRoutes hangs the
// session endpoints off the authenticated /api group.
func AuthRoutes(r fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	auth := r.Group("/auth")
	auth.Post("/google", authController.LoginGoogle)
	auth.Post("/refresh", authController.RefreshToken)
}

func SecuredAuthRoutes(r fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	auth := r.Group("/auth")
	auth.Post("/complete-registration", authController.CompleteRegistration)
	auth.Post("/accept-tos", authController.AcceptTos)
	auth.Get("/me", authController.Me)
	auth.Post("/logout", authController.Logout)
}
