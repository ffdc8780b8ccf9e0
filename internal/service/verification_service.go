package service

import (
	"context"
	"fmt"
	"time"

	"webhook-verifier/internal/core/domain"
	"webhook-verifier/internal/core/ports"

	"github.com/rs/zerolog"
)

// VerificationOptions tunes the dispatcher.
type VerificationOptions struct {
	// AllowUnknownPlatforms makes platforms without a verifier pass unchecked.
	// Off by default: unknown platforms are rejected.
	AllowUnknownPlatforms bool
	// Now overrides the clock used by replay guards.
	Now func() time.Time
}

// verificationService implements ports.VerificationService.
type verificationService struct {
	sigSvc       ports.SignatureService
	resolver     ports.SecretResolver
	allowUnknown bool
	now          func() time.Time
	log          zerolog.Logger
}

// NewVerificationService creates the webhook verification dispatcher.
func NewVerificationService(
	sigSvc ports.SignatureService,
	resolver ports.SecretResolver,
	opts VerificationOptions,
	log zerolog.Logger,
) ports.VerificationService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &verificationService{
		sigSvc:       sigSvc,
		resolver:     resolver,
		allowUnknown: opts.AllowUnknownPlatforms,
		now:          now,
		log:          log,
	}
}

// Verify selects the verifier for cfg.Platform and returns its verdict.
// It never panics: any failure inside a verifier becomes a rejected result.
func (s *verificationService) Verify(ctx context.Context, req ports.InboundRequest, cfg domain.WebhookConfig) (result *domain.VerificationResult) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("platform", string(cfg.Platform)).Msg("verification: panic recovered")
			result = domain.NewRejected(cfg.Platform, domain.ReasonInternal, fmt.Sprintf("Webhook verification failed: %v", r))
		}
	}()

	verifier := s.verifierFor(cfg)
	if verifier == nil {
		result = domain.NewRejected(cfg.Platform, domain.ReasonUnknownPlatform,
			fmt.Sprintf("Unsupported webhook platform %q", string(cfg.Platform)))
	} else {
		result = verifier.Verify(ctx, req)
	}

	s.logResult(result)
	return result
}

func (s *verificationService) verifierFor(cfg domain.WebhookConfig) ports.PlatformVerifier {
	guard := NewReplayGuard(cfg.Tolerance(), s.now)

	switch cfg.Platform {
	case domain.PlatformClerk:
		return NewClerkVerifier(cfg.Secret, guard)
	case domain.PlatformStripe:
		return NewStripeVerifier(cfg.Secret, guard)
	case domain.PlatformGitHub:
		return NewGitHubVerifier(cfg.Secret, s.sigSvc)
	case domain.PlatformDodoPayments:
		return NewDodoPaymentsVerifier(cfg.Secret, guard)
	case domain.PlatformCustom:
		return NewCustomTokenVerifier(s.resolver, s.sigSvc)
	}

	if s.allowUnknown {
		s.log.Warn().Str("platform", string(cfg.Platform)).Msg("verification: no verifier for platform, passing through")
		return passthroughVerifier{platform: cfg.Platform}
	}
	return nil
}

func (s *verificationService) logResult(result *domain.VerificationResult) {
	if result.IsValid {
		s.log.Debug().
			Str("platform", string(result.Platform)).
			Str("delivery_id", result.Metadata[domain.MetaDeliveryID]).
			Msg("verification: webhook accepted")
		return
	}
	s.log.Warn().
		Str("platform", string(result.Platform)).
		Str("reason", string(result.Reason)).
		Str("error", result.Error).
		Msg("verification: webhook rejected")
}
