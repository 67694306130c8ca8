package domain

import (
	"time"

	"github.com/google/uuid"
)

// PageRef names the entity a comment thread is attached to. Comments are
// looked up by exact equality on (Type, Key).
type PageRef struct {
	Type string `json:"type" db:"page_type"`
	Key  string `json:"key" db:"page_key"`
}

type PageType string

const (
	PageProblem    PageType = "problem"
	PageSubmission PageType = "submission"
	PagePost       PageType = "post"
)

func (t PageType) IsValid() bool {
	switch t {
	case PageProblem, PageSubmission, PagePost:
		return true
	default:
		return false
	}
}

// Page is a row in the commentable-page registry. Pages are registered by the
// owning subsystems (problems, submissions, posts); this service only resolves
// them before comment operations.
type Page struct {
	ID        uuid.UUID `json:"id" db:"page_id"`
	Type      string    `json:"type" db:"page_type"`
	Key       string    `json:"key" db:"page_key"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (p *Page) Ref() PageRef {
	return PageRef{Type: p.Type, Key: p.Key}
}
