package service

import (
	"context"
	"errors"
	"strings"

	"webhook-verifier/internal/core/domain"
	"webhook-verifier/internal/core/ports"

	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeVerifier verifies the Stripe-Signature scheme:
//
//	Stripe-Signature: t={timestamp},v1={hex hmac}[,v1=...]
//
// The replay window is applied here so a stale delivery is reported as such;
// the HMAC check is done by stripe-go with its own tolerance disabled.
type StripeVerifier struct {
	secret string
	guard  *ReplayGuard
}

// NewStripeVerifier creates a Stripe verifier for one endpoint secret.
func NewStripeVerifier(secret string, guard *ReplayGuard) *StripeVerifier {
	return &StripeVerifier{secret: secret, guard: guard}
}

func (v *StripeVerifier) Platform() domain.Platform { return domain.PlatformStripe }

func (v *StripeVerifier) Verify(_ context.Context, req ports.InboundRequest) *domain.VerificationResult {
	p := v.Platform()

	header := req.Header(HeaderStripeSignature)
	if header == "" {
		return rejectMissingHeaders(p)
	}

	parts := parseStripeSignatureHeader(header)
	timestamp := firstValue(parts["t"])
	candidates := parts["v1"]
	if timestamp == "" || len(candidates) == 0 {
		return rejectStripeFormat()
	}

	body, fail := readRawBody(p, req)
	if fail != nil {
		return fail
	}

	if fail := checkTimestamp(p, v.guard, timestamp); fail != nil {
		return fail
	}

	err := webhook.ValidatePayloadIgnoringTolerance(body, canonicalStripeHeader(timestamp, candidates), v.secret)
	switch {
	case err == nil:
	case errors.Is(err, webhook.ErrInvalidHeader), errors.Is(err, webhook.ErrNotSigned):
		return rejectStripeFormat()
	default:
		return rejectSignature(p)
	}

	payload := parsePayload(body)
	meta := map[string]string{domain.MetaTimestamp: timestamp}
	putIfSet(meta, domain.MetaDeliveryID, payloadString(payload, "id"))
	putIfSet(meta, domain.MetaEventType, payloadString(payload, "type"))
	return domain.NewVerified(p, payload, meta)
}

func rejectStripeFormat() *domain.VerificationResult {
	return domain.NewRejected(domain.PlatformStripe, domain.ReasonMalformedSignature,
		"Invalid Stripe webhook: invalid signature format")
}

// parseStripeSignatureHeader splits "k=v,k=v" pairs. Repeated keys keep every
// value in order; pairs without "=" are skipped.
func parseStripeSignatureHeader(header string) map[string][]string {
	parts := make(map[string][]string)
	for _, pair := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || key == "" || value == "" {
			continue
		}
		parts[key] = append(parts[key], value)
	}
	return parts
}

// canonicalStripeHeader rebuilds the header with only t and v1 pairs, in the
// exact form stripe-go parses.
func canonicalStripeHeader(timestamp string, signatures []string) string {
	var b strings.Builder
	b.WriteString("t=")
	b.WriteString(timestamp)
	for _, sig := range signatures {
		b.WriteString(",v1=")
		b.WriteString(sig)
	}
	return b.String()
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
