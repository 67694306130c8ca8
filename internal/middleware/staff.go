package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireStaff guards moderation surfaces such as the audit log.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		if !user.IsStaff() {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}
