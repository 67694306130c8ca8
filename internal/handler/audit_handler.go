package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"arena-comments/internal/middleware"
	"arena-comments/internal/service/audit"
)

type AuditHandler struct {
	auditService audit.Service
}

func NewAuditHandler(auditService audit.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) Recent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	revs, err := h.auditService.Recent(c.Context(), limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"revisions": revs,
	})
}

func (h *AuditHandler) CommentRevisions(c *fiber.Ctx) error {
	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	result, err := h.auditService.ListForComment(c.Context(), commentID, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
