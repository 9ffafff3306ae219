package main

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/blog-service/internal/api/http"
	"github.com/spec-kit/blog-service/internal/api/http/handlers"
	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/config"
	"github.com/spec-kit/blog-service/internal/events"
	"github.com/spec-kit/blog-service/internal/observability"
	"github.com/spec-kit/blog-service/internal/persistence"
	"github.com/spec-kit/blog-service/internal/repository"
	"github.com/spec-kit/blog-service/internal/repository/memory"
	"github.com/spec-kit/blog-service/internal/service"
	"github.com/spec-kit/blog-service/internal/worker"
)

// stores groups the repositories selected by STORE_DRIVER.
type stores struct {
	users       repository.UserRepository
	categories  repository.CategoryRepository
	posts       repository.PostRepository
	revocations repository.RevocationRepository
	tx          repository.Transactor

	postgres *persistence.Postgres
	redis    *persistence.Redis
}

func (s *stores) Close() {
	s.redis.Close()
	s.postgres.Close()
}

func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stores, error) {
	s := &stores{}

	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		mem := memory.NewStore()
		s.users, s.categories, s.posts = mem.Users(), mem.Categories(), mem.Posts()
		s.revocations, s.tx = mem.Revocations(), mem.Transactor()
	case config.StoreDriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		s.postgres = pg
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		s.users = repository.NewUserRepository(pg.Pool)
		s.categories = repository.NewCategoryRepository(pg.Pool)
		s.posts = repository.NewPostRepository(pg.Pool)
		s.tx = repository.NewTransactor(pg.Pool)
		s.revocations = memory.NewStore().Revocations()
	default:
		return nil, errors.New("unknown store driver " + cfg.Store.Driver)
	}

	if redis := persistence.NewRedis(ctx, cfg.Redis, logger); redis != nil {
		s.redis = redis
		s.revocations = repository.NewRedisRevocationRepository(redis.Client)
	}
	return s, nil
}

// services holds the application layer built on top of stores.
type services struct {
	auth       *service.AuthService
	users      *service.UserService
	posts      *service.PostService
	categories *service.CategoryService
	moderation *service.ModerationService
}

func buildServices(cfg *config.Config, s *stores, logger *zap.Logger) services {
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	return services{
		auth: service.NewAuthService(*cfg, service.AuthDependencies{
			UserRepo:       s.users,
			RevocationRepo: s.revocations,
			Logger:         logger,
		}),
		users: service.NewUserService(service.UserDependencies{UserRepo: s.users}),
		posts: service.NewPostService(service.PostDependencies{
			PostRepo:     s.posts,
			CategoryRepo: s.categories,
			Transactor:   s.tx,
			Dispatcher:   dispatcher,
			Logger:       logger,
		}),
		categories: service.NewCategoryService(service.CategoryDependencies{
			CategoryRepo: s.categories,
			PostRepo:     s.posts,
			Transactor:   s.tx,
			Dispatcher:   dispatcher,
			Logger:       logger,
		}),
		moderation: service.NewModerationService(service.ModerationDependencies{
			UserRepo:   s.users,
			PostRepo:   s.posts,
			Dispatcher: dispatcher,
			Logger:     logger,
		}),
	}
}

func newHTTPApp(cfg *config.Config, s *stores, svc services, logger *zap.Logger) *fiber.App {
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ErrorHandler:          httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:     cfg.App.RequestTimeout(),
		CORSOrigins: cfg.App.CORSOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, s.postgres, s.redis, metrics),
		Auth:           handlers.NewAuthHandler(svc.auth),
		Users:          handlers.NewUsersHandler(svc.users),
		Posts:          handlers.NewPostsHandler(svc.posts),
		Categories:     handlers.NewCategoriesHandler(svc.categories),
		Admin:          handlers.NewAdminHandler(svc.moderation),
		AuthMiddleware: auth.NewAuthMiddleware(svc.auth.Tokens(), s.users, s.revocations),
	})
	return app
}
