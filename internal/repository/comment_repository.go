package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"arena-comments/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByPage(ctx context.Context, page domain.PageRef) ([]domain.AnnotatedComment, error)
	ListByPageForViewer(ctx context.Context, page domain.PageRef, viewerID uuid.UUID) ([]domain.AnnotatedComment, error)
}

type commentRepository struct {
	db Querier
}

func NewCommentRepository(db Querier) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (comment_id, page_type, page_key, user_id, parent_id, title, body)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		comment.ID, comment.PageType, comment.PageKey, comment.UserID,
		comment.ParentID, comment.Title, comment.Body,
	).Scan(&comment.CreatedAt)
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	query := `SELECT comment_id, page_type, page_key, user_id, parent_id, title, body, created_at
		FROM comments WHERE comment_id = $1`

	err := r.db.GetContext(ctx, &comment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// listQuery annotates every comment of a page in one pass: revision counts
// come from a grouped subquery, never a lookup per row.
const listQuery = `
	SELECT
		c.comment_id, c.page_type, c.page_key, c.user_id, c.parent_id,
		c.title, c.body, c.created_at,
		u.user_id, u.username, u.role,
		COALESCE(r.revision_count, 0) AS revision_count
	FROM comments c
	INNER JOIN users u ON c.user_id = u.user_id
	LEFT JOIN (
		SELECT entity_id, COUNT(*) AS revision_count
		FROM revisions
		WHERE entity_type = 'comment'
		GROUP BY entity_id
	) r ON r.entity_id = c.comment_id
	WHERE c.page_type = $1 AND c.page_key = $2
	ORDER BY c.created_at, c.comment_id`

// listForViewerQuery additionally left-joins the viewer's vote per comment,
// defaulting the score to 0 where no vote row exists. The (comment, voter)
// pair is unique, so the join cannot fan out.
const listForViewerQuery = `
	SELECT
		c.comment_id, c.page_type, c.page_key, c.user_id, c.parent_id,
		c.title, c.body, c.created_at,
		u.user_id, u.username, u.role,
		COALESCE(r.revision_count, 0) AS revision_count,
		COALESCE(v.score, 0) AS vote_score
	FROM comments c
	INNER JOIN users u ON c.user_id = u.user_id
	LEFT JOIN (
		SELECT entity_id, COUNT(*) AS revision_count
		FROM revisions
		WHERE entity_type = 'comment'
		GROUP BY entity_id
	) r ON r.entity_id = c.comment_id
	LEFT JOIN comment_votes v ON v.comment_id = c.comment_id AND v.voter_id = $3
	WHERE c.page_type = $1 AND c.page_key = $2
	ORDER BY c.created_at, c.comment_id`

func (r *commentRepository) ListByPage(ctx context.Context, page domain.PageRef) ([]domain.AnnotatedComment, error) {
	rows, err := r.db.QueryxContext(ctx, listQuery, page.Type, page.Key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.AnnotatedComment
	for rows.Next() {
		var c domain.AnnotatedComment
		var author domain.CommentAuthor
		err := rows.Scan(
			&c.ID, &c.PageType, &c.PageKey, &c.UserID, &c.ParentID,
			&c.Title, &c.Body, &c.CreatedAt,
			&author.ID, &author.Username, &author.Role,
			&c.RevisionCount,
		)
		if err != nil {
			return nil, err
		}
		c.Author = &author
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (r *commentRepository) ListByPageForViewer(ctx context.Context, page domain.PageRef, viewerID uuid.UUID) ([]domain.AnnotatedComment, error) {
	rows, err := r.db.QueryxContext(ctx, listForViewerQuery, page.Type, page.Key, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.AnnotatedComment
	for rows.Next() {
		var c domain.AnnotatedComment
		var author domain.CommentAuthor
		err := rows.Scan(
			&c.ID, &c.PageType, &c.PageKey, &c.UserID, &c.ParentID,
			&c.Title, &c.Body, &c.CreatedAt,
			&author.ID, &author.Username, &author.Role,
			&c.RevisionCount, &c.VoteScore,
		)
		if err != nil {
			return nil, err
		}
		c.Author = &author
		comments = append(comments, c)
	}

	return comments, rows.Err()
}
