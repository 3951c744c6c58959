// Package subscriptionmanager собирает приложение: хранилище, миграции, кеш,
// публикацию событий, сервисы и HTTP-сервер.
package subscriptionmanager

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/subscription-manager/internal/cache"
	"github.com/magabrotheeeer/subscription-manager/internal/config"
	"github.com/magabrotheeeer/subscription-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/subscription-manager/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/subscription-manager/internal/migrations"
	planservice "github.com/magabrotheeeer/subscription-manager/internal/services/plan"
	userservice "github.com/magabrotheeeer/subscription-manager/internal/services/user"
	"github.com/magabrotheeeer/subscription-manager/internal/storage"
	"github.com/magabrotheeeer/subscription-manager/internal/storage/repository"
)

type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *storage.Storage
	publisher *rabbitmq.Publisher
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.URLRabbit, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, err
	}
	publisher, err := rabbitmq.NewPublisher(conn, cfg.Exchange)
	if err != nil {
		return nil, err
	}

	tokens := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	userService := userservice.NewUserService(
		repository.NewUsers(db), cacheRedis, publisher, tokens, logger)
	planService := planservice.NewPlanService(
		repository.NewPlans(db), cacheRedis, publisher, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, tokens, userService, planService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:    srv,
		logger:    logger,
		db:        db,
		publisher: publisher,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.publisher.Close()
		_ = a.db.DB.Close()
		return err
	}
}
