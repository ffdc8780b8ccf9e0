package service

import (
	"context"
	"encoding/json"
	"fmt"

	"webhook-verifier/internal/core/domain"
	"webhook-verifier/internal/core/ports"
)

// Header names per platform wire format.
const (
	HeaderSvixID        = "svix-id"
	HeaderSvixTimestamp = "svix-timestamp"
	HeaderSvixSignature = "svix-signature"

	HeaderStripeSignature = "stripe-signature"

	HeaderGitHubSignature = "x-hub-signature-256"
	HeaderGitHubEvent     = "x-github-event"
	HeaderGitHubDelivery  = "x-github-delivery"

	HeaderWebhookID        = "webhook-id"
	HeaderWebhookTimestamp = "webhook-timestamp"
	HeaderWebhookSignature = "webhook-signature"

	HeaderCustomID    = "x-webhook-id"
	HeaderCustomToken = "x-webhook-token"
)

func rejectMissingHeaders(p domain.Platform) *domain.VerificationResult {
	return domain.NewRejected(p, domain.ReasonMissingHeaders,
		fmt.Sprintf("Missing required %s webhook headers", p.DisplayName()))
}

func rejectSignature(p domain.Platform) *domain.VerificationResult {
	return domain.NewRejected(p, domain.ReasonSignatureMismatch,
		fmt.Sprintf("Invalid %s webhook signature", p.DisplayName()))
}

// readRawBody returns the exact transmitted bytes, or a rejection.
func readRawBody(p domain.Platform, req ports.InboundRequest) ([]byte, *domain.VerificationResult) {
	body, err := req.RawBody()
	if err != nil {
		return nil, domain.NewRejected(p, domain.ReasonInternal,
			fmt.Sprintf("Failed to read %s webhook body: %v", p.DisplayName(), err))
	}
	return body, nil
}

// checkTimestamp parses a signing timestamp and applies the replay window.
// Returns nil when the timestamp is acceptable.
func checkTimestamp(p domain.Platform, guard *ReplayGuard, raw string) *domain.VerificationResult {
	claimed, ok := parseUnixSeconds(raw)
	if !ok {
		return domain.NewRejected(p, domain.ReasonMalformedSignature,
			fmt.Sprintf("Invalid %s webhook timestamp", p.DisplayName()))
	}
	if !guard.IsTimestampValid(claimed) {
		return domain.NewRejected(p, domain.ReasonStaleTimestamp,
			fmt.Sprintf("%s webhook timestamp is outside the tolerance window", p.DisplayName()))
	}
	return nil
}

// parsePayload best-effort decodes a JSON object body. An authentic body that
// is not a JSON object yields nil rather than a failure.
func parsePayload(body []byte) map[string]interface{} {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	return payload
}

// payloadString reads a top-level string field from a parsed payload.
func payloadString(payload map[string]interface{}, key string) string {
	if payload == nil {
		return ""
	}
	if s, ok := payload[key].(string); ok {
		return s
	}
	return ""
}

// putIfSet adds non-empty values to metadata.
func putIfSet(meta map[string]string, key, value string) {
	if value != "" {
		meta[key] = value
	}
}

// passthroughVerifier accepts every request. Only used when unknown
// platforms are explicitly configured to fail open.
type passthroughVerifier struct {
	platform domain.Platform
}

func (v passthroughVerifier) Platform() domain.Platform { return v.platform }

func (v passthroughVerifier) Verify(_ context.Context, req ports.InboundRequest) *domain.VerificationResult {
	body, err := req.RawBody()
	if err != nil {
		return domain.NewVerified(v.platform, nil, nil)
	}
	return domain.NewVerified(v.platform, parsePayload(body), nil)
}
