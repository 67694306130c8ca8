package audit

import (
	"context"

	"github.com/google/uuid"

	"arena-comments/internal/domain"
	"arena-comments/internal/repository"
)

type Service interface {
	Recent(ctx context.Context, limit int) ([]domain.Revision, error)
	ListForComment(ctx context.Context, commentID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Revision], error)
}

type service struct {
	revisionRepo repository.RevisionRepository
}

func NewService(revisionRepo repository.RevisionRepository) Service {
	return &service{
		revisionRepo: revisionRepo,
	}
}

func (s *service) Recent(ctx context.Context, limit int) ([]domain.Revision, error) {
	params := domain.PaginationParams{
		Page:     1,
		PageSize: limit,
	}

	revs, _, err := s.revisionRepo.List(ctx, params)
	return revs, err
}

func (s *service) ListForComment(ctx context.Context, commentID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Revision], error) {
	revs, total, err := s.revisionRepo.ListByEntity(ctx, domain.EntityComment, commentID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Revision]{}, err
	}

	return domain.NewPaginatedResponse(revs, params.Page, params.PageSize, total), nil
}
