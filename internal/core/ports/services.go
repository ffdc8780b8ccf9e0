package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks -exclude_interfaces=InboundRequest,PlatformVerifier,SignatureService

import (
	"context"
	"time"

	"webhook-verifier/internal/core/domain"
)

// InboundRequest is the raw HTTP delivery a verifier consumes.
type InboundRequest interface {
	// Header performs a case-insensitive lookup, returning "" when absent.
	Header(name string) string
	// RawBody returns the body bytes exactly as transmitted.
	RawBody() ([]byte, error)
}

// PlatformVerifier checks one platform's signature scheme.
// Verify never panics on malformed input; rejection is a result, not an error.
type PlatformVerifier interface {
	Platform() domain.Platform
	Verify(ctx context.Context, req InboundRequest) *domain.VerificationResult
}

// VerificationService is the single entry point callers use to verify a webhook.
type VerificationService interface {
	Verify(ctx context.Context, req InboundRequest, cfg domain.WebhookConfig) *domain.VerificationResult
}

// SignatureService provides the HMAC and comparison primitives used by the
// GitHub and custom verifiers.
type SignatureService interface {
	// SignHex returns lowercase hex HMAC-SHA256(key, payload).
	SignHex(key []byte, payload []byte) string
	// SafeCompare is a constant-time equality check for equal-length inputs.
	SafeCompare(a, b string) bool
}

// EncryptionService handles AES-256-GCM encryption/decryption of secrets at rest.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// SecretResolver maps a custom webhook id to its expected bearer token.
type SecretResolver interface {
	ResolveSecret(ctx context.Context, webhookID string) (string, error)
}

// DeliveryStore records delivery keys for caller-side replay protection.
type DeliveryStore interface {
	// Claim atomically records key, returning false if it was already recorded.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// DeliveryGuard rejects deliveries that were already accepted once.
type DeliveryGuard interface {
	// Accept returns false when the verified delivery is a duplicate.
	Accept(ctx context.Context, endpointID string, result *domain.VerificationResult, body []byte) (bool, error)
}
