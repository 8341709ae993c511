// @title                       SmartTodo Tasks API
// @version                     1.0
// @description                 Personal task tracking with subtasks, filtering and administrator analytics.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/smarttodo/tasks-api/internal/api"
	"github.com/smarttodo/tasks-api/internal/api/metrics"
	"github.com/smarttodo/tasks-api/internal/core/service"
	"github.com/smarttodo/tasks-api/internal/infrastructure/config"
	"github.com/smarttodo/tasks-api/internal/infrastructure/db/file"
	"github.com/smarttodo/tasks-api/internal/infrastructure/db/mongo"
	"github.com/smarttodo/tasks-api/internal/infrastructure/db/redis"
	"github.com/smarttodo/tasks-api/internal/infrastructure/docstore"
	"github.com/smarttodo/tasks-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "tasks-api:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "tasks-api",
	})

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeBackend(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to close store backend")
		}
	}()

	store := docstore.NewStore(backend, logger.Component("docstore"), docstore.WithCommitHook(metrics.ObserveCommit))
	userRepo := docstore.NewUserRepository(store)
	taskRepo := docstore.NewTaskRepository(store)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiresIn)
	userService := service.NewUserService(userRepo, logger.Component("users"))
	taskService := service.NewTaskService(taskRepo, logger.Component("tasks"))
	analyticsService := service.NewAnalyticsService(store, logger.Component("analytics"))

	seedAdmin(ctx, authService, cfg.Admin, log)

	e := api.NewRouter(api.Dependencies{
		AuthService:      authService,
		UserService:      userService,
		TaskService:      taskService,
		AnalyticsService: analyticsService,
		Store:            store,
		JWTSecret:        cfg.JWTSecret,
		Logger:           logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", store.Backend()).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// openBackend selects the persistence medium named by STORE_BACKEND.
func openBackend(ctx context.Context, cfg *config.Config) (docstore.Backend, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.Store.Backend {
	case config.BackendMongo:
		b, closeFn, err := mongo.Open(ctx, mongo.Config{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
		if err != nil {
			return nil, nil, err
		}
		return b, closeFn, nil
	case config.BackendRedis:
		b, closeFn, err := redis.Open(ctx, redis.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
			Key:  cfg.Redis.Key,
		})
		if err != nil {
			return nil, nil, err
		}
		return b, closeFn, nil
	case config.BackendMemory:
		return docstore.NewMemoryBackend(), noop, nil
	default:
		return file.NewBackend(cfg.Store.Path), noop, nil
	}
}

type adminSeeder interface {
	EnsureAdmin(ctx context.Context, email, password string) (bool, error)
}

// seedAdmin creates the default administrator. Failures are logged and the
// server keeps starting; ADMIN_EMAIL may already belong to a regular account.
func seedAdmin(ctx context.Context, auth adminSeeder, admin config.AdminConfig, log zerolog.Logger) {
	created, err := auth.EnsureAdmin(ctx, admin.Email, admin.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", admin.Email).Msg("default admin not seeded")
		return
	}
	if created {
		log.Info().Str("email", admin.Email).Msg("default admin created")
	}
}
