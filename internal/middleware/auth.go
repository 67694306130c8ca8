package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"arena-comments/internal/domain"
	"arena-comments/internal/service/auth"
)

const (
	UserContextKey   = "user"
	UserIDContextKey = "user_id"
)

// AuthRequired rejects requests without a valid bearer token before any
// handler logic runs. The resolved user lands in the request locals.
func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolveUser(c, authService)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": err.Error(),
			})
		}

		c.Locals(UserContextKey, user)
		c.Locals(UserIDContextKey, user.ID)

		return c.Next()
	}
}

// OptionalAuth resolves the requester when a valid token is present and
// silently continues as anonymous otherwise. Thread reads use it so vote
// scores can be personalized without requiring a login.
func OptionalAuth(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") != "" {
			if user, err := resolveUser(c, authService); err == nil {
				c.Locals(UserContextKey, user)
				c.Locals(UserIDContextKey, user.ID)
			}
		}
		return c.Next()
	}
}

func resolveUser(c *fiber.Ctx, authService auth.Service) (*domain.User, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, errMissingAuth
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errBadAuthFormat
	}

	claims, err := authService.ValidateAccessToken(parts[1])
	if err != nil {
		return nil, errBadToken
	}

	user, err := authService.GetUserByID(c.Context(), claims.UserID)
	if err != nil || user == nil {
		return nil, errUserGone
	}

	return user, nil
}

var (
	errMissingAuth   = fiber.NewError(fiber.StatusUnauthorized, "Missing authorization header")
	errBadAuthFormat = fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization header format")
	errBadToken      = fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	errUserGone      = fiber.NewError(fiber.StatusUnauthorized, "User not found")
)

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func GetCurrentUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}
