package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"arena-comments/internal/domain"
)

type RevisionRepository interface {
	Create(ctx context.Context, rev *domain.Revision) error
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Revision, int64, error)
	ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) ([]domain.Revision, int64, error)
}

type revisionRepository struct {
	db Querier
}

func NewRevisionRepository(db Querier) RevisionRepository {
	return &revisionRepository{db: db}
}

func (r *revisionRepository) Create(ctx context.Context, rev *domain.Revision) error {
	query := `
		INSERT INTO revisions (revision_id, user_id, message, entity_type, entity_id, snapshot, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		rev.ID, rev.UserID, rev.Message, rev.EntityType, rev.EntityID,
		rev.Snapshot, rev.IPAddress, rev.UserAgent,
	).Scan(&rev.CreatedAt)
}

func (r *revisionRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Revision, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM revisions`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			rv.*,
			u.username as user_name
		FROM revisions rv
		LEFT JOIN users u ON rv.user_id = u.user_id
		ORDER BY rv.created_at DESC
		LIMIT $1 OFFSET $2`

	var revs []domain.Revision
	err := r.db.SelectContext(ctx, &revs, query, params.PageSize, params.Offset())
	return revs, total, err
}

func (r *revisionRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) ([]domain.Revision, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM revisions WHERE entity_type = $1 AND entity_id = $2`
	if err := r.db.GetContext(ctx, &total, countQuery, entityType, entityID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM revisions
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	var revs []domain.Revision
	err := r.db.SelectContext(ctx, &revs, query, entityType, entityID, params.PageSize, params.Offset())
	return revs, total, err
}

// Record snapshots the affected row and appends one revision entry. Callers
// on the write path invoke it inside the same transaction as the row insert.
func Record(ctx context.Context, repo RevisionRepository, input domain.CreateRevisionInput) (*domain.Revision, error) {
	snapshot, err := json.Marshal(input.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("repository: marshaling revision snapshot: %w", err)
	}

	rev := &domain.Revision{
		ID:         uuid.New(),
		UserID:     input.UserID,
		Message:    input.Message,
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		Snapshot:   snapshot,
		IPAddress:  input.IPAddress,
		UserAgent:  input.UserAgent,
	}

	if err := repo.Create(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}
