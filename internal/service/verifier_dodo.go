package service

import (
	"context"
	"net/http"

	"webhook-verifier/internal/core/domain"
	"webhook-verifier/internal/core/ports"

	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"
)

// DodoPaymentsVerifier verifies Dodo Payments webhooks, which follow the
// Standard Webhooks scheme. The replay window is enforced here; the
// cryptographic check is delegated to the Standard Webhooks library.
type DodoPaymentsVerifier struct {
	hook    *standardwebhooks.Webhook
	hookErr error
	guard   *ReplayGuard
}

// NewDodoPaymentsVerifier creates a verifier for one webhook secret. An
// unusable secret is reported on Verify, not here.
func NewDodoPaymentsVerifier(secret string, guard *ReplayGuard) *DodoPaymentsVerifier {
	v := &DodoPaymentsVerifier{guard: guard}
	if !hasSigningKey(secret) {
		v.hookErr = errEmptySigningSecret
		return v
	}
	v.hook, v.hookErr = standardwebhooks.NewWebhook(secret)
	return v
}

func (v *DodoPaymentsVerifier) Platform() domain.Platform { return domain.PlatformDodoPayments }

func (v *DodoPaymentsVerifier) Verify(_ context.Context, req ports.InboundRequest) *domain.VerificationResult {
	p := v.Platform()

	msgID := req.Header(HeaderWebhookID)
	timestamp := req.Header(HeaderWebhookTimestamp)
	signature := req.Header(HeaderWebhookSignature)
	if msgID == "" || timestamp == "" || signature == "" {
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
		return domain.NewRejected(p, domain.ReasonInternal, "Invalid Dodo Payments webhook secret: "+v.hookErr.Error())
	}

	headers := http.Header{}
	headers.Set(HeaderWebhookID, msgID)
	headers.Set(HeaderWebhookTimestamp, timestamp)
	headers.Set(HeaderWebhookSignature, signature)
	if err := v.hook.VerifyIgnoringTimestamp(body, headers); err != nil {
		return domain.NewRejected(p, domain.ReasonSignatureMismatch,
			"Invalid Dodo Payments webhook signature: "+err.Error())
	}

	payload := parsePayload(body)
	meta := map[string]string{
		domain.MetaDeliveryID: msgID,
		domain.MetaTimestamp:  timestamp,
	}
	putIfSet(meta, domain.MetaEventType, payloadString(payload, "type"))
	return domain.NewVerified(p, payload, meta)
}
