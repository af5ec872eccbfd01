package middleware

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/dto"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWTProtected rejects requests without a valid bearer token and attaches the
// token's subject to the request.
func JWTProtected(tokens *services.TokenService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		KeyFunc: tokens.Keyfunc,
		Claims:  &services.Claims{},
		// jwtware only extracts the token; VerifyToken decides.
		SuccessHandler: func(c *fiber.Ctx) error {
			token, _ := c.Locals("user").(*jwt.Token)
			if token == nil {
				return unauthorized(c, "Invalid or expired token")
			}
			claims, err := tokens.VerifyToken(token.Raw)
			if err != nil || claims.UID == "" {
				return unauthorized(c, "Invalid or expired token")
			}

			c.Locals(subjectKey, &Subject{
				UID:         claims.UID,
				Email:       claims.Email,
				Admin:       claims.Admin,
				IsAnonymous: claims.IsAnonymous,
			})
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				return unauthorized(c, "Unauthorized")
			}
			return unauthorized(c, "Invalid or expired token")
		},
	})
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: message})
}
