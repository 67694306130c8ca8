package repository

import (
	"context"

	"github.com/google/uuid"
)

// SubmissionRepository is the read-only standing source for the posting gate.
// Submissions and problems are owned by the judging subsystem.
type SubmissionRepository interface {
	// HasFullScore reports whether the user has at least one submission
	// awarded the full points of its problem.
	HasFullScore(ctx context.Context, userID uuid.UUID) (bool, error)
}

type submissionRepository struct {
	db Querier
}

func NewSubmissionRepository(db Querier) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) HasFullScore(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1
			FROM submissions s
			INNER JOIN problems p ON s.problem_id = p.problem_id
			WHERE s.user_id = $1 AND s.points = p.points
		)`
	err := r.db.GetContext(ctx, &exists, query, userID)
	return exists, err
}
