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

	"adrec/internal/delivery"
	"adrec/internal/domain"
	"adrec/internal/infrastructure"
	"adrec/internal/usecase"
	"adrec/pkg/config"
	"adrec/pkg/logger"
	"adrec/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.WithField("key_strategy", cfg.Engine.KeyStrategy).Info("Starting recommendation service")

	m := metrics.New()

	embedder := infrastructure.NewEmbeddingClient(
		cfg.Embedding.APIURL,
		cfg.Embedding.APIKey,
		cfg.Embedding.Model,
		cfg.Embedding.RequestTimeout,
		cfg.Embedding.RateLimitPerSecond,
		log,
		m,
	)

	source := infrastructure.NewCampaignClient(
		cfg.Data.CampaignsURL,
		cfg.Data.RequestTimeout,
		cfg.Data.RateLimitPerSecond,
		log,
		m,
	)

	var strategy domain.KeyStrategy = domain.RoleIndustryKey{}
	if cfg.Engine.KeyStrategy == "role" {
		strategy = domain.RoleKey{}
	}

	service := usecase.NewService(source, embedder, strategy, log, m)

	if cfg.Engine.RebuildOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Engine.RebuildTimeout)
		if err := service.Rebuild(ctx); err != nil {
			// Queries return 503 until a rebuild succeeds via the API.
			log.WithError(err).Warn("Initial engine build failed, starting without a snapshot")
		}
		cancel()
	}

	handlers := delivery.NewHTTPHandlers(service, log, m)
	router := delivery.NewHTTPRouter(handlers, log, m)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router.SetupRoutes(),
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}
}
