package handler

import (
	"github.com/gofiber/fiber/v2"

	"arena-comments/internal/domain"
	"arena-comments/internal/service"
)

type Handlers struct {
	Auth    *AuthHandler
	Comment *CommentHandler
	Audit   *AuditHandler
	User    *UserHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(services.Auth),
		Comment: NewCommentHandler(services.Comment, services.Page),
		Audit:   NewAuditHandler(services.Audit),
		User:    NewUserHandler(services.Moderation),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.PaginationParams{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}
	params.Validate()
	return params
}
