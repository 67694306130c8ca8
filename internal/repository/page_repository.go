package repository

import (
	"context"
	"database/sql"
	"errors"

	"arena-comments/internal/domain"
)

type PageRepository interface {
	Resolve(ctx context.Context, pageType, pageKey string) (*domain.Page, error)
}

type pageRepository struct {
	db Querier
}

func NewPageRepository(db Querier) PageRepository {
	return &pageRepository{db: db}
}

func (r *pageRepository) Resolve(ctx context.Context, pageType, pageKey string) (*domain.Page, error) {
	var page domain.Page
	query := `SELECT * FROM pages WHERE page_type = $1 AND page_key = $2`

	err := r.db.GetContext(ctx, &page, query, pageType, pageKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}
