// Package gate decides whether a user may post comments. The same standing
// rule feeds the write path (as a posting check) and the read path (as the
// is_new_user annotation), so the two cannot drift apart.
package gate

import (
	"context"
	"errors"

	"arena-comments/internal/domain"
	"arena-comments/internal/repository"
)

// ErrUnauthenticated flags a precondition violation: authentication is
// enforced upstream, so the gate must never see a nil user.
var ErrUnauthenticated = errors.New("gate: requester is not authenticated")

var (
	errMuted = &domain.ValidationError{
		Message: "You have been muted and cannot post comments",
	}
	errNotProven = &domain.ValidationError{
		Message: "You need a full-score submission on at least one problem before you can post comments",
	}
)

type Service interface {
	// CheckPost returns nil when the user may post, a *domain.ValidationError
	// when posting is denied, or an infrastructure error.
	CheckPost(ctx context.Context, user *domain.User) error
	// IsNewUser reports whether the user has not yet earned posting rights.
	IsNewUser(ctx context.Context, user *domain.User) (bool, error)
}

type service struct {
	submissionRepo repository.SubmissionRepository
}

func NewService(submissionRepo repository.SubmissionRepository) Service {
	return &service{submissionRepo: submissionRepo}
}

func (s *service) CheckPost(ctx context.Context, user *domain.User) error {
	if user == nil {
		return ErrUnauthenticated
	}
	if user.Muted {
		return errMuted
	}

	newUser, err := s.IsNewUser(ctx, user)
	if err != nil {
		return err
	}
	if newUser {
		return errNotProven
	}
	return nil
}

func (s *service) IsNewUser(ctx context.Context, user *domain.User) (bool, error) {
	if user == nil {
		return false, ErrUnauthenticated
	}
	if user.IsStaff() {
		return false, nil
	}

	proven, err := s.submissionRepo.HasFullScore(ctx, user.ID)
	if err != nil {
		return false, err
	}
	return isNewUser(user.IsStaff(), proven), nil
}

// isNewUser is the single standing predicate: a user is "new" until they are
// staff or hold at least one full-score submission.
func isNewUser(isStaff, hasFullScore bool) bool {
	return !isStaff && !hasFullScore
}
