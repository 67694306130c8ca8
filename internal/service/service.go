package service

import (
	"github.com/redis/go-redis/v9"

	"arena-comments/internal/config"
	"arena-comments/internal/dblock"
	"arena-comments/internal/repository"
	"arena-comments/internal/service/audit"
	"arena-comments/internal/service/auth"
	"arena-comments/internal/service/comment"
	"arena-comments/internal/service/gate"
	"arena-comments/internal/service/moderation"
	"arena-comments/internal/service/page"
)

type Services struct {
	Auth       auth.Service
	Gate       gate.Service
	Page       page.Service
	Comment    comment.Service
	Audit      audit.Service
	Moderation moderation.Service
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, locks *dblock.Locker, cfg *config.Config) *Services {
	authService := auth.NewService(repos.User, repos.Session, cfg)
	gateService := gate.NewService(repos.Submission)
	pageService := page.NewService(repos.Page)
	commentService := comment.NewService(repos, repos, gateService, locks, rdb, cfg.LockTimeout)
	auditService := audit.NewService(repos.Revision)
	moderationService := moderation.NewService(repos, repos)

	return &Services{
		Auth:       authService,
		Gate:       gateService,
		Page:       pageService,
		Comment:    commentService,
		Audit:      auditService,
		Moderation: moderationService,
	}
}
