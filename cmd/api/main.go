package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"webhook-verifier/config"
	httpHandler "webhook-verifier/internal/adapter/http/handler"
	pgStorage "webhook-verifier/internal/adapter/storage/postgres"
	redisStorage "webhook-verifier/internal/adapter/storage/redis"
	"webhook-verifier/internal/core/ports"
	"webhook-verifier/internal/service"
	"webhook-verifier/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Int("default_tolerance_s", cfg.Verification.DefaultToleranceSeconds).
		Bool("allow_unknown_platforms", cfg.Verification.AllowUnknownPlatforms).
		Msg("Starting webhook verifier")

	ctx := context.Background()

	// PostgreSQL: endpoint registry
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	if err := pgStorage.Bootstrap(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap schema")
	}

	endpointRepo := pgStorage.NewEndpointRepo(pool)
	logEndpointSummary(ctx, endpointRepo, cfg.Verification.AllowUnknownPlatforms, log)

	// Redis: delivery de-duplication
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	deliveryStore := redisStorage.NewDeliveryStore(rdb)

	// Core services
	encSvc, err := service.NewAESEncryptionService(cfg.AES.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}
	sigSvc := service.NewHMACSignatureService()
	secretSvc := service.NewSecretService(endpointRepo, encSvc)
	verifySvc := service.NewVerificationService(sigSvc, secretSvc, service.VerificationOptions{
		AllowUnknownPlatforms: cfg.Verification.AllowUnknownPlatforms,
	}, log)
	deliveryGuard := service.NewDeliveryGuard(deliveryStore, cfg.Verification.DeliveryTTL)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Endpoints:        endpointRepo,
		EncSvc:           encSvc,
		VerifySvc:        verifySvc,
		DeliveryGuard:    deliveryGuard,
		DefaultTolerance: cfg.Verification.DefaultToleranceSeconds,
		MaxBodyBytes:     cfg.Verification.MaxBodyBytes,
		HealthCheckers: []ports.HealthChecker{
			pgStorage.NewHealthCheck(pool),
			redisStorage.NewHealthCheck(rdb),
		},
		Logger: log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
