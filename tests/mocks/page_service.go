package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"arena-comments/internal/domain"
)

type PageService struct {
	mock.Mock
}

func (m *PageService) Resolve(ctx context.Context, pageType, pageKey string) (*domain.Page, error) {
	args := m.Called(ctx, pageType, pageKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page), args.Error(1)
}
