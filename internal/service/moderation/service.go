package moderation

import (
	"context"

	"github.com/google/uuid"

	"arena-comments/internal/domain"
	"arena-comments/internal/repository"
)

// RequestMeta carries the client address recorded on moderation revisions.
type RequestMeta struct {
	IPAddress *string
	UserAgent *string
}

type Service interface {
	// SetMuted flips a user's mute flag and records a revision under the
	// acting staff member, atomically. Already-matching flags are a no-op.
	SetMuted(ctx context.Context, actor *domain.User, userID uuid.UUID, muted bool, meta RequestMeta) (*domain.User, error)
}

type service struct {
	repos *repository.Repositories
	tx    repository.Transactor
}

func NewService(repos *repository.Repositories, tx repository.Transactor) Service {
	return &service{repos: repos, tx: tx}
}

func (s *service) SetMuted(ctx context.Context, actor *domain.User, userID uuid.UUID, muted bool, meta RequestMeta) (*domain.User, error) {
	user, err := s.repos.User.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.Muted == muted {
		return user, nil
	}

	message := domain.RevisionMutedUser
	if !muted {
		message = domain.RevisionUnmutedUser
	}

	err = s.tx.WithinTx(ctx, func(r *repository.Repositories) error {
		if err := r.User.SetMuted(ctx, userID, muted); err != nil {
			return err
		}
		user.Muted = muted
		_, err := repository.Record(ctx, r.Revision, domain.CreateRevisionInput{
			UserID:     actor.ID,
			Message:    message,
			EntityType: domain.EntityUser,
			EntityID:   userID,
			Snapshot:   user,
			IPAddress:  meta.IPAddress,
			UserAgent:  meta.UserAgent,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}
