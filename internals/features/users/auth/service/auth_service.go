package service

import (
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"checkkid_backend/internals/configs"
	"checkkid_backend/internals/constants"
	kindergartenModel "checkkid_backend/internals/features/kindergartens/kindergarten/model"
	parentModel "checkkid_backend/internals/features/parents/model"
	staffModel "checkkid_backend/internals/features/staff/model"
	userDTO "checkkid_backend/internals/features/users/user/dto"
	userModel "checkkid_backend/internals/features/users/user/model"
	helpers "checkkid_backend/internals/helpers"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

/* =========================================================
   GOOGLE SIGN-IN
========================================================= */

// LoginGoogle verifies the Google ID token, finds or creates the user by
// its OpenID subject, and issues our own token pair. A brand-new user comes
// back with an empty role; the client follows up with complete-registration.
func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if input.IDToken == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "id_token is required")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to decode ID Token")
	}

	var user userModel.UserModel
	err = db.First(&user, "openid_subject = ?", claimSet.Sub).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
		}
		user = userModel.UserModel{
			OpenIDSubject: claimSet.Sub,
			Email:         claimSet.Email,
			Name:          claimSet.Name,
			IsActive:      true,
		}
		if claimSet.Picture != "" {
			pic := claimSet.Picture
			user.ProfilePictureURL = &pic
		}
		if err := db.Create(&user).Error; err != nil {
			low := strings.ToLower(err.Error())
			if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
				return helpers.JsonError(c, fiber.StatusConflict, "Email already registered")
			}
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
		}
	}

	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}

	return issueTokens(c, user)
}

/* =========================================================
   REGISTRATION COMPLETION
========================================================= */

type CompleteRegistrationRequest struct {
	Role string `json:"role" validate:"required,oneof=PARENT STAFF BOSS"`

	FirstName   string  `json:"first_name" validate:"required,max=100"`
	LastName    string  `json:"last_name" validate:"required,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Address     *string `json:"address" validate:"omitempty,max=500"`

	// STAFF: claim a provisioned staff profile with the invite code.
	KindergartenID *uuid.UUID `json:"kindergarten_id"`
	InviteCode     *string    `json:"invite_code"`

	// BOSS: founds a new kindergarten.
	KindergartenName *string `json:"kindergarten_name" validate:"omitempty,max=100"`
}

// CompleteRegistration sets the role exactly once and creates (or claims)
// the matching profile row. The role never changes afterwards.
func CompleteRegistration(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req CompleteRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helpers.ValidateStruct(c, &req); err != nil {
		return err
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
	}
	if user.Role != "" || user.HasProfile() {
		return helpers.JsonError(c, fiber.StatusConflict, "Registration already completed")
	}

	var profileID uuid.UUID
	err = db.Transaction(func(tx *gorm.DB) error {
		switch req.Role {
		case constants.RoleParent:
			parent := parentModel.ParentModel{
				FirstName:   req.FirstName,
				LastName:    req.LastName,
				Email:       user.Email,
				PhoneNumber: req.PhoneNumber,
				Address:     req.Address,
				CanPickup:   true,
			}
			if err := tx.Create(&parent).Error; err != nil {
				return err
			}
			profileID = parent.ID

		case constants.RoleStaff:
			if req.KindergartenID == nil || req.InviteCode == nil {
				return fiber.NewError(fiber.StatusBadRequest, "kindergarten_id and invite_code are required for staff registration")
			}
			var staff staffModel.StaffModel
			if err := tx.Where("kindergarten_id = ? AND email = ?", *req.KindergartenID, user.Email).
				First(&staff).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fiber.NewError(fiber.StatusForbidden, "No staff invitation found for this account")
				}
				return err
			}
			if staff.InviteCodeHash == nil ||
				bcrypt.CompareHashAndPassword([]byte(*staff.InviteCodeHash), []byte(*req.InviteCode)) != nil {
				return fiber.NewError(fiber.StatusForbidden, "Invalid invite code")
			}
			staff.FirstName = req.FirstName
			staff.LastName = req.LastName
			staff.PhoneNumber = req.PhoneNumber
			staff.InviteCodeHash = nil
			if err := tx.Save(&staff).Error; err != nil {
				return err
			}
			profileID = staff.ID

		case constants.RoleBoss:
			if req.KindergartenName == nil || strings.TrimSpace(*req.KindergartenName) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "kindergarten_name is required for boss registration")
			}
			kindergarten := kindergartenModel.KindergartenModel{Name: *req.KindergartenName}
			if err := tx.Create(&kindergarten).Error; err != nil {
				return err
			}
			staff := staffModel.StaffModel{
				FirstName:      req.FirstName,
				LastName:       req.LastName,
				Email:          user.Email,
				PhoneNumber:    req.PhoneNumber,
				IsAdmin:        true,
				KindergartenID: &kindergarten.ID,
			}
			if err := tx.Create(&staff).Error; err != nil {
				return err
			}
			profileID = staff.ID
		}

		return tx.Model(&userModel.UserModel{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{"role": req.Role, "profile_id": profileID}).Error
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helpers.JsonError(c, fe.Code, fe.Message)
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to complete registration")
	}

	user.Role = req.Role
	user.ProfileID = &profileID
	return issueTokens(c, user)
}

/* =========================================================
   SESSION
========================================================= */

func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helpers.JsonOK(c, "OK", userDTO.FromUserModel(user))
}

func AcceptTos(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var input struct {
		Version string `json:"version" validate:"required,max=20"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helpers.ValidateStruct(c, &input); err != nil {
		return err
	}

	now := nowUTC()
	if err := db.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"tos_accepted":    true,
			"tos_accepted_at": now,
			"tos_version":     input.Version,
		}).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to record acceptance")
	}
	return helpers.JsonOK(c, "Terms accepted", fiber.Map{"accepted_at": now, "version": input.Version})
}

func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	tokenString := input.RefreshToken
	if tokenString == "" {
		tokenString = c.Cookies("refresh_token")
	}
	if tokenString == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "refresh_token is required")
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(configs.JWTRefreshSecret), nil
	}); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	raw, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}

	return issueTokens(c, user)
}

func Logout(c *fiber.Ctx) error {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", Expires: expired, HTTPOnly: true})
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", Expires: expired, HTTPOnly: true})
	return helpers.JsonOK(c, "Logged out", nil)
}

/* =========================================================
   TOKEN ISSUANCE
========================================================= */

func buildAccessClaims(user userModel.UserModel, now time.Time) jwt.MapClaims {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"typ":     "access",
		"iat":     now.Unix(),
		"exp":     now.Add(accessTokenTTL).Unix(),
	}
	if user.ProfileID != nil {
		claims["profile_id"] = user.ProfileID.String()
	}
	return claims
}

func buildRefreshClaims(user userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": user.ID.String(),
		"typ":     "refresh",
		"iat":     now.Unix(),
		"exp":     now.Add(refreshTokenTTL).Unix(),
	}
}

func issueTokens(c *fiber.Ctx, user userModel.UserModel) error {
	now := nowUTC()

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(user, now)).
		SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to issue access token")
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(user, now)).
		SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to issue refresh token")
	}

	setAuthCookies(c, accessToken, refreshToken, now)

	return helpers.JsonOK(c, "Authenticated", fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_at":    now.Add(accessTokenTTL),
		"user":          userDTO.FromUserModel(user),
	})
}

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Expires:  now.Add(accessTokenTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  now.Add(refreshTokenTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}
