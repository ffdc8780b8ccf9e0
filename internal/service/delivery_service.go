package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"webhook-verifier/internal/core/domain"
	"webhook-verifier/internal/core/ports"

	"github.com/zeebo/blake3"
)

// deliveryGuard implements ports.DeliveryGuard. It is the replay layer for
// schemes without a signed timestamp (GitHub, custom) and a second line for
// the others: each verified delivery may be accepted once per TTL.
type deliveryGuard struct {
	store ports.DeliveryStore
	ttl   time.Duration
}

// NewDeliveryGuard creates a guard recording delivery keys for ttl.
func NewDeliveryGuard(store ports.DeliveryStore, ttl time.Duration) ports.DeliveryGuard {
	return &deliveryGuard{store: store, ttl: ttl}
}

// Accept claims the delivery key for a verified result.
func (g *deliveryGuard) Accept(ctx context.Context, endpointID string, result *domain.VerificationResult, body []byte) (bool, error) {
	ok, err := g.store.Claim(ctx, DeliveryKey(endpointID, result, body), g.ttl)
	if err != nil {
		return false, fmt.Errorf("claiming delivery: %w", err)
	}
	return ok, nil
}

// DeliveryKey identifies a delivery: the platform delivery id when the scheme
// provides one, otherwise a BLAKE3 fingerprint of the body.
func DeliveryKey(endpointID string, result *domain.VerificationResult, body []byte) string {
	if id := result.Metadata[domain.MetaDeliveryID]; id != "" {
		return endpointID + ":id:" + id
	}
	sum := blake3.Sum256(body)
	return endpointID + ":body:" + hex.EncodeToString(sum[:])
}
