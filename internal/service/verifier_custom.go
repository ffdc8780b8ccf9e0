package service

import (
	"context"

	"webhook-verifier/internal/core/domain"
	"webhook-verifier/internal/core/ports"
)

// CustomTokenVerifier authenticates user-defined integrations by a static
// bearer token looked up per webhook id. The token is long-lived and nothing
// is signed, so there is no replay window; this scheme only suits low-risk
// integrations.
type CustomTokenVerifier struct {
	resolver ports.SecretResolver
	sigSvc   ports.SignatureService
}

// NewCustomTokenVerifier creates a custom-token verifier.
func NewCustomTokenVerifier(resolver ports.SecretResolver, sigSvc ports.SignatureService) *CustomTokenVerifier {
	return &CustomTokenVerifier{resolver: resolver, sigSvc: sigSvc}
}

func (v *CustomTokenVerifier) Platform() domain.Platform { return domain.PlatformCustom }

func (v *CustomTokenVerifier) Verify(ctx context.Context, req ports.InboundRequest) *domain.VerificationResult {
	p := v.Platform()

	webhookID := req.Header(HeaderCustomID)
	token := req.Header(HeaderCustomToken)
	if webhookID == "" || token == "" {
		return rejectMissingHeaders(p)
	}

	body, fail := readRawBody(p, req)
	if fail != nil {
		return fail
	}

	if v.resolver == nil {
		return domain.NewRejected(p, domain.ReasonSecretResolution, "Custom webhook token resolution is not configured")
	}
	expected, err := v.resolver.ResolveSecret(ctx, webhookID)
	if err != nil {
		return domain.NewRejected(p, domain.ReasonSecretResolution, "Failed to resolve Custom webhook token: "+err.Error())
	}
	if expected == "" {
		return domain.NewRejected(p, domain.ReasonSecretResolution, "No token configured for Custom webhook")
	}

	if !v.sigSvc.SafeCompare(token, expected) {
		return domain.NewRejected(p, domain.ReasonSignatureMismatch, "Invalid Custom webhook token")
	}

	return domain.NewVerified(p, parsePayload(body), map[string]string{
		domain.MetaWebhookID: webhookID,
	})
}
