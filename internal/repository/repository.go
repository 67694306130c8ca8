package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Querier is the subset of sqlx used by the repositories. Both *sqlx.DB and
// *sqlx.Tx satisfy it, so the same repository code runs inside and outside a
// transaction.
type Querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

type Repositories struct {
	User       UserRepository
	Session    SessionRepository
	Page       PageRepository
	Submission SubmissionRepository
	Comment    CommentRepository
	Revision   RevisionRepository

	db *sqlx.DB
}

func NewRepositories(db *sqlx.DB) *Repositories {
	r := newRepositories(db)
	r.db = db
	return r
}

func newRepositories(q Querier) *Repositories {
	return &Repositories{
		User:       NewUserRepository(q),
		Session:    NewSessionRepository(q),
		Page:       NewPageRepository(q),
		Submission: NewSubmissionRepository(q),
		Comment:    NewCommentRepository(q),
		Revision:   NewRevisionRepository(q),
	}
}

// Transactor runs a set of repository operations atomically.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(r *Repositories) error) error
}

// WithinTx runs fn against transaction-bound repositories. The transaction
// commits only when fn returns nil; any error, panic or context cancellation
// rolls everything back.
func (r *Repositories) WithinTx(ctx context.Context, fn func(r *Repositories) error) error {
	if r.db == nil {
		return fmt.Errorf("repository: nested transactions are not supported")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(newRepositories(tx)); err != nil {
		return err
	}

	return tx.Commit()
}
