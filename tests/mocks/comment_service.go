package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"arena-comments/internal/domain"
	"arena-comments/internal/service/comment"
)

type CommentService struct {
	mock.Mock
}

func (m *CommentService) Submit(ctx context.Context, user *domain.User, page domain.PageRef, input domain.CreateCommentInput, meta comment.RequestMeta) (*domain.Comment, error) {
	args := m.Called(ctx, user, page, input, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentService) Thread(ctx context.Context, page domain.PageRef, viewer *domain.User) (*domain.ThreadView, error) {
	args := m.Called(ctx, page, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ThreadView), args.Error(1)
}
