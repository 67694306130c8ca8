package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Revision is an append-only audit entry. Exactly one revision is written for
// every successful comment post, inside the same transaction as the comment
// row. Revisions are never updated or deleted.
type Revision struct {
	ID         uuid.UUID       `json:"id" db:"revision_id"`
	UserID     uuid.UUID       `json:"user_id" db:"user_id"`
	UserName   *string         `json:"user_name,omitempty" db:"user_name"`
	Message    string          `json:"message" db:"message"`
	EntityType string          `json:"entity_type" db:"entity_type"`
	EntityID   uuid.UUID       `json:"entity_id" db:"entity_id"`
	Snapshot   json.RawMessage `json:"snapshot,omitempty" db:"snapshot"`
	IPAddress  *string         `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent  *string         `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

const (
	EntityComment = "comment"
	EntityUser    = "user"

	// RevisionPostedComment is the audit message attached to every
	// successful comment write.
	RevisionPostedComment = "Posted comment"
	RevisionMutedUser     = "Muted user"
	RevisionUnmutedUser   = "Unmuted user"
)

type CreateRevisionInput struct {
	UserID     uuid.UUID
	Message    string
	EntityType string
	EntityID   uuid.UUID
	Snapshot   interface{}
	IPAddress  *string
	UserAgent  *string
}
