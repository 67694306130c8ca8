package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommentVote is owned by the voting subsystem; this service only reads
// aggregated scores. At most one row exists per (comment, voter) pair.
type CommentVote struct {
	CommentID uuid.UUID `json:"comment_id" db:"comment_id"`
	VoterID   uuid.UUID `json:"voter_id" db:"voter_id"`
	Score     int16     `json:"score" db:"score"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
