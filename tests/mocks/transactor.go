package mocks

import (
	"context"

	"arena-comments/internal/repository"
)

// Transactor satisfies repository.Transactor for unit tests: fn runs against
// the supplied mock-backed repositories, and Committed records whether the
// unit would have committed or rolled back.
type Transactor struct {
	Repos     *repository.Repositories
	Committed bool
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(r *repository.Repositories) error) error {
	if err := fn(t.Repos); err != nil {
		return err
	}
	t.Committed = true
	return nil
}
