package comment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"arena-comments/internal/dblock"
	"arena-comments/internal/domain"
	"arena-comments/internal/repository"
	"arena-comments/internal/service/gate"
)

// postLocks is the resource set every comment write holds: exclusive intent
// on the comment and revision tables, shared intent on the page registry.
var postLocks = dblock.LockSet{
	Write: []dblock.Resource{dblock.Comments, dblock.Revisions},
	Read:  []dblock.Resource{dblock.Pages},
}

const threadCacheTTL = 5 * time.Minute

// RequestMeta carries the client address recorded on revision entries.
type RequestMeta struct {
	IPAddress *string
	UserAgent *string
}

type Service interface {
	// Submit validates and persists a comment together with exactly one
	// revision entry, as a single atomic unit under the posting lock.
	// Rejections come back as domain.ValidationErrors with nothing written.
	Submit(ctx context.Context, user *domain.User, page domain.PageRef, input domain.CreateCommentInput, meta RequestMeta) (*domain.Comment, error)
	// Thread builds the annotated comment list for a page. A nil viewer gets
	// vote scores fixed at zero and no is_new_user annotation.
	Thread(ctx context.Context, page domain.PageRef, viewer *domain.User) (*domain.ThreadView, error)
}

type service struct {
	repos    *repository.Repositories
	tx       repository.Transactor
	gate     gate.Service
	locks    *dblock.Locker
	redis    *redis.Client
	lockWait time.Duration
}

func NewService(repos *repository.Repositories, tx repository.Transactor, gateService gate.Service, locks *dblock.Locker, rdb *redis.Client, lockWait time.Duration) Service {
	return &service{
		repos:    repos,
		tx:       tx,
		gate:     gateService,
		locks:    locks,
		redis:    rdb,
		lockWait: lockWait,
	}
}

func (s *service) Submit(ctx context.Context, user *domain.User, page domain.PageRef, input domain.CreateCommentInput, meta RequestMeta) (*domain.Comment, error) {
	errs := input.Validate()
	if parentErr, err := s.checkParent(ctx, page, input.ParentID); err != nil {
		return nil, err
	} else if parentErr != nil {
		errs = append(errs, *parentErr)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	// Gating is cheap and short-circuits before the lock is taken.
	if err := s.gate.CheckPost(ctx, user); err != nil {
		return nil, err
	}

	lockCtx := ctx
	if s.lockWait > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, s.lockWait)
		defer cancel()
	}
	release, err := s.locks.Acquire(lockCtx, postLocks)
	if err != nil {
		return nil, err
	}
	defer release()

	comment := &domain.Comment{
		ID:       uuid.New(),
		PageType: page.Type,
		PageKey:  page.Key,
		UserID:   user.ID,
		ParentID: input.ParentID,
		Title:    input.Title,
		Body:     input.Body,
	}

	err = s.tx.WithinTx(ctx, func(r *repository.Repositories) error {
		if err := r.Comment.Create(ctx, comment); err != nil {
			return err
		}
		_, err := repository.Record(ctx, r.Revision, domain.CreateRevisionInput{
			UserID:     user.ID,
			Message:    domain.RevisionPostedComment,
			EntityType: domain.EntityComment,
			EntityID:   comment.ID,
			Snapshot:   comment,
			IPAddress:  meta.IPAddress,
			UserAgent:  meta.UserAgent,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("posting comment on %s/%s: %w", page.Type, page.Key, err)
	}

	s.invalidateThreadCache(ctx, page)

	return comment, nil
}

// checkParent enforces that a reply targets an existing comment on the same
// page. A mismatch is a validation error, never a silent reparent.
func (s *service) checkParent(ctx context.Context, page domain.PageRef, parentID *uuid.UUID) (*domain.ValidationError, error) {
	if parentID == nil {
		return nil, nil
	}

	parent, err := s.repos.Comment.GetByID(ctx, *parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return &domain.ValidationError{Field: "parent_id", Message: "Parent comment not found"}, nil
	}
	if parent.Page() != page {
		return &domain.ValidationError{Field: "parent_id", Message: "Parent comment belongs to a different page"}, nil
	}
	return nil, nil
}

func (s *service) Thread(ctx context.Context, page domain.PageRef, viewer *domain.User) (*domain.ThreadView, error) {
	if viewer == nil {
		return s.anonymousThread(ctx, page)
	}

	comments, err := s.repos.Comment.ListByPageForViewer(ctx, page, viewer.ID)
	if err != nil {
		return nil, err
	}

	newUser, err := s.gate.IsNewUser(ctx, viewer)
	if err != nil {
		return nil, err
	}

	return &domain.ThreadView{
		Page:        page,
		Comments:    comments,
		HasComments: len(comments) > 0,
		IsNewUser:   &newUser,
	}, nil
}

// anonymousThread serves the viewer-less listing, cached in redis since it is
// identical for every anonymous reader. Cache-aside has a known window: a
// read that loaded the list before a post committed can repopulate the key
// after the writer's DEL, so anonymous readers may see a thread up to
// threadCacheTTL stale. Authenticated reads never touch the cache.
func (s *service) anonymousThread(ctx context.Context, page domain.PageRef) (*domain.ThreadView, error) {
	cacheKey := threadCacheKey(page)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var view domain.ThreadView
			if json.Unmarshal([]byte(cached), &view) == nil {
				return &view, nil
			}
		}
	}

	comments, err := s.repos.Comment.ListByPage(ctx, page)
	if err != nil {
		return nil, err
	}

	view := &domain.ThreadView{
		Page:        page,
		Comments:    comments,
		HasComments: len(comments) > 0,
	}

	if s.redis != nil {
		if viewJSON, err := json.Marshal(view); err == nil {
			_ = s.redis.Set(ctx, cacheKey, viewJSON, threadCacheTTL).Err()
		}
	}

	return view, nil
}

func (s *service) invalidateThreadCache(ctx context.Context, page domain.PageRef) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, threadCacheKey(page)).Err()
}

func threadCacheKey(page domain.PageRef) string {
	return fmt.Sprintf("thread:%s:%s", page.Type, page.Key)
}
