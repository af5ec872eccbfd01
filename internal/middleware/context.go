package middleware

import "github.com/gofiber/fiber/v2"

const subjectKey = "subject"

// Subject is the authenticated caller attached to the request by JWTProtected.
type Subject struct {
	UID         string
	Email       string
	Admin       bool
	IsAnonymous bool
}

// GetSubject returns the caller stored by JWTProtected.
func GetSubject(c *fiber.Ctx) (*Subject, bool) {
	subject, ok := c.Locals(subjectKey).(*Subject)
	return subject, ok && subject != nil
}
