package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Read user_id from c.Locals (set by the auth middleware).
// 401 when not logged in, 400 when the claim is malformed.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localsUUID(c, "user_id", true)
}

// Read profile_id from c.Locals. Users who never completed registration have
// no profile yet; callers that need one get a 403.
func GetProfileIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := localsUUID(c, "profile_id", false)
	if err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "Registration not completed")
	}
	return id, nil
}

// Read the role claim from c.Locals.
func GetRoleFromToken(c *fiber.Ctx) (string, error) {
	v := c.Locals("user_role")
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Missing role information")
	}
	return s, nil
}

func localsUUID(c *fiber.Ctx, key string, required bool) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		if required {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Not logged in")
		}
		return uuid.Nil, nil
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil && required {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Not logged in")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			if required {
				return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Not logged in")
			}
			return uuid.Nil, nil
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid id in token")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid id in token")
	}
}

// ParseUUIDParam reads a :param path segment as UUID.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}
