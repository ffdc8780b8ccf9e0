package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"webhook-verifier/internal/core/domain"
	"webhook-verifier/internal/core/ports"

	svix "github.com/svix/svix-webhooks/go"
)

const signingSecretPrefix = "whsec_"

var errEmptySigningSecret = errors.New("empty signing secret")

// ClerkVerifier verifies Clerk webhooks, which are delivered through Svix.
//
// Signed content is "{svix-id}.{svix-timestamp}.{body}", HMAC-SHA256 keyed with
// the base64-decoded secret (after the whsec_ prefix). The signature header
// is a space-separated list of "v1,<base64>" entries and any match is accepted,
// so overlapping keys during rotation both verify. The replay window is
// applied here; the signature check is done by the Svix library.
type ClerkVerifier struct {
	hook    *svix.Webhook
	hookErr error
	guard   *ReplayGuard
}

// NewClerkVerifier creates a Clerk verifier for one signing secret. An
// unusable secret is reported on Verify, not here.
func NewClerkVerifier(secret string, guard *ReplayGuard) *ClerkVerifier {
	v := &ClerkVerifier{guard: guard}
	if !hasSigningKey(secret) {
		v.hookErr = errEmptySigningSecret
		return v
	}
	v.hook, v.hookErr = svix.NewWebhook(secret)
	return v
}

func (v *ClerkVerifier) Platform() domain.Platform { return domain.PlatformClerk }

func (v *ClerkVerifier) Verify(_ context.Context, req ports.InboundRequest) *domain.VerificationResult {
	p := v.Platform()

	msgID := req.Header(HeaderSvixID)
	timestamp := req.Header(HeaderSvixTimestamp)
	signatures := req.Header(HeaderSvixSignature)
	if msgID == "" || timestamp == "" || signatures == "" {
		return rejectMissingHeaders(p)
	}

	body, fail := readRawBody(p, req)
	if fail != nil {
		return fail
	}

	if fail := checkTimestamp(p, v.guard, timestamp); fail != nil {
		return fail
	}

	if v.hookErr != nil {
		return domain.NewRejected(p, domain.ReasonInternal, "Invalid Clerk webhook secret: "+v.hookErr.Error())
	}

	headers := http.Header{}
	headers.Set(HeaderSvixID, msgID)
	headers.Set(HeaderSvixTimestamp, timestamp)
	headers.Set(HeaderSvixSignature, signatures)
	if err := v.hook.VerifyIgnoringTimestamp(body, headers); err != nil {
		return rejectSignature(p)
	}

	payload := parsePayload(body)
	meta := map[string]string{
		domain.MetaDeliveryID: msgID,
		domain.MetaTimestamp:  timestamp,
	}
	putIfSet(meta, domain.MetaEventType, payloadString(payload, "type"))
	return domain.NewVerified(p, payload, meta)
}

// hasSigningKey reports whether a whsec_ secret carries any key material.
// Both libraries accept an empty key, which would verify against "".
func hasSigningKey(secret string) bool {
	return strings.TrimPrefix(secret, signingSecretPrefix) != ""
}
