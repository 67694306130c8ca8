package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"arena-comments/internal/domain"
	"arena-comments/internal/service/moderation"
)

type ModerationService struct {
	mock.Mock
}

func (m *ModerationService) SetMuted(ctx context.Context, actor *domain.User, userID uuid.UUID, muted bool, meta moderation.RequestMeta) (*domain.User, error) {
	args := m.Called(ctx, actor, userID, muted, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
