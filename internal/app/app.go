// Package app собирает зависимости приложения и управляет жизненным циклом
// HTTP-сервера: хранилище состояния, кеш, публикация событий, сервисы и маршруты.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/vlourenco/rodizio/internal/cache"
	"github.com/vlourenco/rodizio/internal/config"
	"github.com/vlourenco/rodizio/internal/events"
	"github.com/vlourenco/rodizio/internal/lib/jwt"
	"github.com/vlourenco/rodizio/internal/lib/sl"
	authservice "github.com/vlourenco/rodizio/internal/services/auth"
	stateservice "github.com/vlourenco/rodizio/internal/services/state"
	"github.com/vlourenco/rodizio/internal/storage/filestore"
	"github.com/vlourenco/rodizio/internal/storage/postgres"
)

// App инкапсулирует HTTP-сервер и ресурсы, требующие закрытия при остановке.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	closers []io.Closer
}

// New создает приложение: подключает хранилище, кеш и брокер,
// собирает сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	var closers []io.Closer

	var store stateservice.Store
	switch cfg.StorageDriver {
	case config.StorageFile:
		store = filestore.New(cfg.DataFilePath)
	case config.StoragePostgres:
		pg, err := postgres.New(cfg.StorageConnectionString, cfg.MigrationsPath)
		if err != nil {
			return nil, err
		}
		closers = append(closers, pg)
		store = pg
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.StorageDriver)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}
	closers = append(closers, cacheRedis.Db)

	// Публикация событий опциональна: без адреса брокера события не шлются.
	var publisher stateservice.Publisher
	if cfg.RabbitMQConnection != "" {
		pub, err := events.Connect(cfg.RabbitMQConnection, 5, 2*time.Second)
		if err != nil {
			return nil, err
		}
		closers = append(closers, pub)
		publisher = pub
	} else {
		logger.Info("event publishing disabled: no rabbitmq connection configured")
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService, err := authservice.NewAuthService(cfg.AdminPassword, jwtMaker)
	if err != nil {
		return nil, err
	}
	stateService := stateservice.NewStateService(store, cacheRedis, publisher, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, stateService, authService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:  srv,
		logger:  logger,
		closers: closers,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
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
		for _, c := range a.closers {
			if cerr := c.Close(); cerr != nil {
				a.logger.Warn("failed to close resource", sl.Err(cerr))
			}
		}
		return err
	}
}
