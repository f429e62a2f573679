package api

import (
	"startup-hub/backend/internal/auth"
	"startup-hub/backend/internal/common"
	"startup-hub/backend/internal/config"
	"startup-hub/backend/internal/db"
	"startup-hub/backend/internal/db/repositories"
	"startup-hub/backend/internal/logging"
	"startup-hub/backend/internal/metrics"
	"startup-hub/backend/internal/services"
)

type Repositories struct {
	Idea  *repositories.IdeaRepository
	User  *repositories.UserRepository
	Codes *repositories.CodeRepository
}

type Services struct {
	Cache  common.CacheInterface
	Tokens *auth.TokenService
	Idea   *services.IdeaService
	User   *services.UserService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
}

// InitDependencies wires repositories and services onto the already
// initialized database handles.
func InitDependencies(cfg *config.Config, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	repos := &Repositories{
		Idea:  repositories.NewIdeaRepository(db.PgDB),
		User:  repositories.NewUserRepository(db.PgDB),
		Codes: repositories.NewCodeRepository(db.DB),
	}

	var cache common.CacheInterface
	if cfg.CacheBackend == "redis" {
		redisCache, err := common.NewRedisCacheService(common.NewRedisClient(cfg))
		if err != nil {
			return nil, err
		}
		cache = redisCache
		logging.Info("Cache backend: redis")
	} else {
		cache = common.NewCacheService(60, 600)
		logging.Info("Cache backend: in-memory")
	}

	tokens := auth.NewTokenService(cfg)
	mailer := common.NewSMTPMailer(cfg)
	uploader := common.NewUploadService(cfg)

	svcs := &Services{
		Cache:  cache,
		Tokens: tokens,
		Idea:   services.NewIdeaService(repos.Idea, repos.User, uploader, cache, metricsReg),
		User:   services.NewUserService(repos.User, repos.Codes, mailer, uploader, tokens, cache, metricsReg),
	}

	return &Dependencies{Repo: repos, Services: svcs}, nil
}
