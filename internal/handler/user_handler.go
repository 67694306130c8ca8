package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"arena-comments/internal/domain"
	"arena-comments/internal/middleware"
	"arena-comments/internal/service/moderation"
)

// UserHandler exposes the staff moderation surface.
type UserHandler struct {
	moderationService moderation.Service
}

func NewUserHandler(moderationService moderation.Service) *UserHandler {
	return &UserHandler{moderationService: moderationService}
}

func (h *UserHandler) Mute(c *fiber.Ctx) error {
	return h.setMuted(c, true)
}

func (h *UserHandler) Unmute(c *fiber.Ctx) error {
	return h.setMuted(c, false)
}

func (h *UserHandler) setMuted(c *fiber.Ctx, muted bool) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	actor := middleware.GetCurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("Authentication required")
	}

	ip, userAgent := middleware.GetRequestMeta(c)
	user, err := h.moderationService.SetMuted(c.Context(), actor, userID, muted,
		moderation.RequestMeta{IPAddress: ip, UserAgent: userAgent})
	if errors.Is(err, domain.ErrNotFound) {
		return middleware.NotFound("User not found")
	}
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": user})
}
