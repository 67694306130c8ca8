package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID  `json:"id" db:"comment_id"`
	PageType  string     `json:"page_type" db:"page_type"`
	PageKey   string     `json:"page_key" db:"page_key"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	ParentID  *uuid.UUID `json:"parent_id" db:"parent_id"`
	Title     string     `json:"title" db:"title"`
	Body      string     `json:"body" db:"body"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`

	Author *CommentAuthor `json:"author,omitempty"`
}

func (c *Comment) Page() PageRef {
	return PageRef{Type: c.PageType, Key: c.PageKey}
}

type CommentAuthor struct {
	ID       uuid.UUID `json:"id" db:"author_id"`
	Username string    `json:"username" db:"author_username"`
	Role     string    `json:"role" db:"author_role"`
}

// AnnotatedComment is a comment row as returned by the thread listing query:
// the comment itself plus its revision count and, for an authenticated viewer,
// that viewer's vote score (0 when the viewer has not voted).
type AnnotatedComment struct {
	Comment
	RevisionCount int64 `json:"revision_count" db:"revision_count"`
	VoteScore     int64 `json:"vote_score" db:"vote_score"`
}

// ThreadView is the read-side payload for a comment thread.
type ThreadView struct {
	Page        PageRef            `json:"page"`
	Comments    []AnnotatedComment `json:"comments"`
	HasComments bool               `json:"has_comments"`
	// IsNewUser is set only for authenticated viewers: true when the viewer
	// has not yet earned posting rights (same rule as the posting gate).
	IsNewUser *bool `json:"is_new_user,omitempty"`
}

type CreateCommentInput struct {
	Title    string     `json:"title" validate:"required,max=200"`
	Body     string     `json:"body" validate:"required"`
	ParentID *uuid.UUID `json:"parent_id"`
}

func (in *CreateCommentInput) Validate() ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, ValidationError{Field: "title", Message: "Title is required"})
	} else if len(in.Title) > 200 {
		errs = append(errs, ValidationError{Field: "title", Message: "Title must be at most 200 characters"})
	}
	if strings.TrimSpace(in.Body) == "" {
		errs = append(errs, ValidationError{Field: "body", Message: "Body is required"})
	}
	return errs
}
