package middleware

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/dto"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired must run after JWTProtected. The admin flag is read from the
// stored profile on every request; the token's admin claim is ignored so that
// revoking admin takes effect immediately.
func AdminRequired(profiles *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subject, ok := GetSubject(c)
		if !ok {
			return unauthorized(c, "Unauthorized")
		}

		profile, err := profiles.Get(c.UserContext(), subject.UID)
		if err != nil && !errors.Is(err, services.ErrProfileNotFound) {
			return err
		}
		if profile == nil || !profile.Admin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: "Admin access required",
			})
		}

		subject.Admin = true
		return c.Next()
	}
}
