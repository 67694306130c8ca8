package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"arena-comments/internal/domain"
	"arena-comments/internal/middleware"
	"arena-comments/internal/service/comment"
	"arena-comments/internal/service/page"
)

type CommentHandler struct {
	commentService comment.Service
	pageService    page.Service
}

func NewCommentHandler(commentService comment.Service, pageService page.Service) *CommentHandler {
	return &CommentHandler{commentService: commentService, pageService: pageService}
}

type commentForm struct {
	Title    string     `json:"title"`
	Body     string     `json:"body"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// threadResponse is the thread view plus the write form: empty on GET,
// echoed back with errors attached when a POST is rejected.
type threadResponse struct {
	*domain.ThreadView
	Form   commentForm              `json:"form"`
	Errors []domain.ValidationError `json:"errors,omitempty"`
}

// Thread serves GET on a page's comment thread: the annotated comment list
// and an empty form prefilled with the page reference.
func (h *CommentHandler) Thread(c *fiber.Ctx) error {
	pg, err := h.resolvePage(c)
	if err != nil {
		return err
	}

	viewer := middleware.GetCurrentUser(c)
	view, err := h.commentService.Thread(c.Context(), pg.Ref(), viewer)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(threadResponse{
		ThreadView: view,
		Form:       commentForm{},
	})
}

// Post submits a comment. Success answers 303 See Other back to the thread
// path so a refresh re-issues a harmless GET; validation or gating rejection
// re-renders the thread with the failed form and its errors, creating
// nothing.
func (h *CommentHandler) Post(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("Authentication required")
	}

	pg, err := h.resolvePage(c)
	if err != nil {
		return err
	}

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	ip, userAgent := middleware.GetRequestMeta(c)
	meta := comment.RequestMeta{IPAddress: ip, UserAgent: userAgent}

	_, err = h.commentService.Submit(c.Context(), user, pg.Ref(), input, meta)
	if err != nil {
		if verrs, ok := domain.AsValidationErrors(err); ok {
			return h.rerenderWithErrors(c, pg, user, input, verrs)
		}
		return err
	}

	return c.Redirect(c.Path(), fiber.StatusSeeOther)
}

func (h *CommentHandler) rerenderWithErrors(c *fiber.Ctx, pg *domain.Page, user *domain.User, input domain.CreateCommentInput, verrs domain.ValidationErrors) error {
	view, err := h.commentService.Thread(c.Context(), pg.Ref(), user)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(threadResponse{
		ThreadView: view,
		Form: commentForm{
			Title:    input.Title,
			Body:     input.Body,
			ParentID: input.ParentID,
		},
		Errors: verrs,
	})
}

func (h *CommentHandler) resolvePage(c *fiber.Ctx) (*domain.Page, error) {
	pg, err := h.pageService.Resolve(c.Context(), c.Params("pageType"), c.Params("pageKey"))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, middleware.NotFound("Page not found")
	}
	if err != nil {
		return nil, err
	}
	return pg, nil
}
