package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Totarae/linkshortener/internal/auth"
	"github.com/Totarae/linkshortener/internal/cache"
	"github.com/Totarae/linkshortener/internal/config"
	"github.com/Totarae/linkshortener/internal/database"
	"github.com/Totarae/linkshortener/internal/handlers"
	"github.com/Totarae/linkshortener/internal/metrics"
	"github.com/Totarae/linkshortener/internal/migrations"
	"github.com/Totarae/linkshortener/internal/repositories"
	"github.com/Totarae/linkshortener/internal/router"
	"github.com/Totarae/linkshortener/internal/service"
	"github.com/Totarae/linkshortener/internal/storage"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// app собранное приложение вместе с ресурсами, которые надо закрыть.
type app struct {
	server  *http.Server
	cfg     *config.Config
	logger  *zap.Logger
	closers []func()
}

// newApp собирает хранилище, кэш, сервисы и маршрутизатор по конфигурации.
func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	strategy, err := service.ParseLookupStrategy(cfg.LinkLookup)
	if err != nil {
		return nil, err
	}

	deps := service.Deps{
		Auth:          auth.New(cfg.JWTSecret, cfg.JWTTTL),
		Logger:        logger,
		Metrics:       metrics.New(),
		BaseURL:       cfg.BaseURL,
		Strategy:      strategy,
		ReservedCodes: router.ReservedCodes,
	}

	switch cfg.Mode {
	case config.ModeDatabase:
		var db *database.DB
		db, err = database.NewDB(ctx, cfg.DatabaseDSN, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		if err = migrations.Up(db.Pool, logger); err != nil {
			a.close()
			return nil, fmt.Errorf("bootstrap schema: %w", err)
		}

		links := repositories.NewLinkRepository(db)
		deps.Links = links
		deps.Health = links
		deps.Users = repositories.NewUserRepository(db)
		deps.Artists = repositories.NewArtistRepository(db)
	default:
		store := storage.NewMemoryStore()
		deps.Links = store
		deps.Users = store
		deps.Artists = store
		deps.Health = store
	}

	switch cfg.CacheMode {
	case config.CacheRedis:
		var rc *cache.Redis
		rc, err = cache.NewRedis(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = rc.Close() })
		deps.Cache = rc
	case config.CacheMemory:
		deps.Cache = cache.NewMemory()
	default:
		deps.Cache = cache.Noop{}
	}

	handler := handlers.NewHandler(service.New(deps), logger, deps.Metrics)
	a.server = &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router.NewRouter(handler, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("Приложение собрано",
		zap.String("mode", cfg.Mode),
		zap.String("cache", cfg.CacheMode),
		zap.String("lookup", string(strategy)),
		zap.String("base_url", cfg.BaseURL),
	)
	return a, nil
}

// run обслуживает запросы до отмены ctx, затем корректно останавливает сервер.
func (a *app) run(ctx context.Context) error {
	defer a.close()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Сервер запущен", zap.String("address", a.cfg.ServerAddress), zap.Bool("https", a.cfg.EnableHTTPS))
		var err error
		if a.cfg.EnableHTTPS {
			err = a.server.ListenAndServeTLS(a.cfg.TLSCertPath, a.cfg.TLSKeyPath)
		} else {
			err = a.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Останавливаем сервер")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
