package page

import (
	"context"

	"arena-comments/internal/domain"
	"arena-comments/internal/repository"
)

type Service interface {
	// Resolve maps a (type, key) pair to a registered page, or
	// domain.ErrNotFound when the type is unknown or no page is registered.
	Resolve(ctx context.Context, pageType, pageKey string) (*domain.Page, error)
}

type service struct {
	pageRepo repository.PageRepository
}

func NewService(pageRepo repository.PageRepository) Service {
	return &service{pageRepo: pageRepo}
}

func (s *service) Resolve(ctx context.Context, pageType, pageKey string) (*domain.Page, error) {
	if !domain.PageType(pageType).IsValid() {
		return nil, domain.ErrNotFound
	}

	page, err := s.pageRepo.Resolve(ctx, pageType, pageKey)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, domain.ErrNotFound
	}
	return page, nil
}
