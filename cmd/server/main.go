package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/workouts-backend-go/internal/api"
	"github.com/jengzang/workouts-backend-go/internal/config"
	"github.com/jengzang/workouts-backend-go/internal/database"
	"github.com/jengzang/workouts-backend-go/internal/mapfeed"
	"github.com/jengzang/workouts-backend-go/internal/middleware"
	"github.com/jengzang/workouts-backend-go/internal/repository"
	"github.com/jengzang/workouts-backend-go/internal/service"
	"github.com/jengzang/workouts-backend-go/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.Init("workouts-backend", cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 初始化存储
	slot, closeStore, err := openSlot(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	repo := repository.NewWorkoutRepository(slot, cfg.StorageQuotaBytes)
	hub := mapfeed.NewHub()
	defer hub.Close()

	session := service.NewSession(repo, service.HomeLocator(cfg.Home), hub, cfg.MapZoom)
	if err := session.Start(ctx); err != nil && !errors.Is(err, service.ErrPositionUnavailable) {
		return err
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer limiter.Stop()

	// 初始化路由
	router := api.SetupRouter(api.Deps{
		Session: session,
		Feed:    hub,
		Limiter: limiter,
		Logger:  log,
	})

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", cfg.Port, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	hub.Close()
	return srv.Shutdown(shutdownCtx)
}

// openSlot opens the configured storage backend
func openSlot(ctx context.Context, cfg *config.Config) (repository.Slot, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendBadger:
		db, err := database.OpenBadger(cfg.BadgerPath)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewBadgerSlot(db), func() { _ = db.Close() }, nil
	default:
		db, err := database.Open(ctx, database.Config{Path: cfg.DBPath})
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSQLiteSlot(db), func() { _ = db.Close() }, nil
	}
}
