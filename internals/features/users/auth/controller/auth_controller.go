package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"checkkid_backend/internals/features/users/auth/service"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ctrl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	return service.LoginGoogle(ctrl.DB, c)
}

func (ctrl *AuthController) CompleteRegistration(c *fiber.Ctx) error {
	return service.CompleteRegistration(ctrl.DB, c)
}

func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	return service.Me(ctrl.DB, c)
}

func (ctrl *AuthController) AcceptTos(c *fiber.Ctx) error {
	return service.AcceptTos(ctrl.DB, c)
}

func (ctrl *AuthController) RefreshToken(c *fiber.Ctx) error {
	return service.RefreshToken(ctrl.DB, c)
}

func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	return service.Logout(c)
}
