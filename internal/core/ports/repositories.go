package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"

	"webhook-verifier/internal/core/domain"
)

// WebhookEndpointRepository reads configured inbound webhook endpoints.
type WebhookEndpointRepository interface {
	// GetByID returns nil, nil when the endpoint does not exist.
	GetByID(ctx context.Context, id string) (*domain.WebhookEndpoint, error)
}
