package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"arena-comments/internal/domain"
)

type RevisionRepository struct {
	mock.Mock
}

func (m *RevisionRepository) Create(ctx context.Context, rev *domain.Revision) error {
	args := m.Called(ctx, rev)
	return args.Error(0)
}

func (m *RevisionRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Revision, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Revision), args.Get(1).(int64), args.Error(2)
}

func (m *RevisionRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) ([]domain.Revision, int64, error) {
	args := m.Called(ctx, entityType, entityID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Revision), args.Get(1).(int64), args.Error(2)
}
