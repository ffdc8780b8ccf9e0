package handler

import (
	"webhook-verifier/internal/adapter/http/middleware"
	"webhook-verifier/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Endpoints        ports.WebhookEndpointRepository
	EncSvc           ports.EncryptionService
	VerifySvc        ports.VerificationService
	DeliveryGuard    ports.DeliveryGuard // nil = de-duplication disabled
	DefaultTolerance int
	MaxBodyBytes     int64
	HealthCheckers   []ports.HealthChecker
	Logger           zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))

	// Health check (deep: verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	maxBody := deps.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}

	webhookHandler := NewWebhookHandler(
		deps.Endpoints,
		deps.EncSvc,
		deps.VerifySvc,
		deps.DeliveryGuard,
		deps.DefaultTolerance,
		deps.Logger,
	)

	v1 := r.Group("/api/v1")
	webhooks := v1.Group("/webhooks", middleware.MaxBodySize(maxBody))
	{
		webhooks.POST("/:endpoint_id", webhookHandler.Receive)
	}

	return r
}
