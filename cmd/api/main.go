package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wiissal/take-a-chef/internal/audit"
	"github.com/wiissal/take-a-chef/internal/config"
	dbpkg "github.com/wiissal/take-a-chef/internal/db"
	"github.com/wiissal/take-a-chef/internal/infra/cache"
	infraRepo "github.com/wiissal/take-a-chef/internal/infra/repository"
	"github.com/wiissal/take-a-chef/internal/logging"
	"github.com/wiissal/take-a-chef/internal/metrics"
	"github.com/wiissal/take-a-chef/internal/routes"
	ucRating "github.com/wiissal/take-a-chef/internal/usecase/rating"
)

func main() {

	cfg := config.Load()
	log := logging.New(cfg)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db := dbpkg.NewDB(cfg, log)
	rdb := cache.NewClient(cfg.RedisURL, log)
	metrics.Register()

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Config: cfg,
		Redis:  rdb,
		Audit:  auditDispatcher,
		Log:    log,
	})

	// ======================================================
	// BACKGROUND: rating drift repair
	// ======================================================
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ratingRepo := infraRepo.NewRatingGormRepository(db, cfg.TxMaxRetries)
	reconciler := ucRating.NewReconciler(
		ratingRepo,
		ucRating.NewAggregator(ratingRepo, log),
		cache.NewChefCache(rdb, cfg.ChefCacheTTL),
		auditDispatcher,
		log,
		cfg.ReconcileInterval,
	)
	reconcilerDone := make(chan struct{})
	go func() {
		defer close(reconcilerDone)
		reconciler.Run(ctx)
	}()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.AppEnv).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	<-reconcilerDone
	auditDispatcher.Close()
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
