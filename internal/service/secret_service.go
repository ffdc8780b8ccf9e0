package service

import (
	"context"
	"errors"
	"fmt"

	"webhook-verifier/internal/core/domain"
	"webhook-verifier/internal/core/ports"
)

// ErrWebhookNotFound is returned when no custom endpoint matches a webhook id.
var ErrWebhookNotFound = errors.New("custom webhook not found")

// SecretService implements ports.SecretResolver over the encrypted endpoint store.
type SecretService struct {
	repo   ports.WebhookEndpointRepository
	encSvc ports.EncryptionService
}

// NewSecretService creates a resolver backed by repo, decrypting with encSvc.
func NewSecretService(repo ports.WebhookEndpointRepository, encSvc ports.EncryptionService) *SecretService {
	return &SecretService{repo: repo, encSvc: encSvc}
}

// ResolveSecret returns the decrypted bearer token for a custom webhook.
// Endpoints of other platforms never resolve, so an HMAC signing secret
// cannot be presented as a bearer token.
func (s *SecretService) ResolveSecret(ctx context.Context, webhookID string) (string, error) {
	endpoint, err := s.repo.GetByID(ctx, webhookID)
	if err != nil {
		return "", fmt.Errorf("fetching webhook endpoint: %w", err)
	}
	if endpoint == nil || endpoint.Platform != domain.PlatformCustom {
		return "", ErrWebhookNotFound
	}

	token, err := s.encSvc.Decrypt(endpoint.SecretEnc)
	if err != nil {
		return "", fmt.Errorf("decrypting webhook token: %w", err)
	}
	return token, nil
}
