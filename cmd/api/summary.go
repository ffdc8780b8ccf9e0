package main

import (
	"context"

	"webhook-verifier/internal/core/domain"

	"github.com/rs/zerolog"
)

type endpointCounter interface {
	CountByPlatform(ctx context.Context) (map[domain.Platform]int, error)
}

// logEndpointSummary reports registered endpoints per platform and flags
// platforms that have no verifier.
func logEndpointSummary(ctx context.Context, repo endpointCounter, allowUnknown bool, log zerolog.Logger) {
	counts, err := repo.CountByPlatform(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Could not summarise webhook endpoints")
		return
	}

	total := 0
	for platform, n := range counts {
		total += n
		if platform.IsKnown() {
			log.Info().Str("platform", string(platform)).Int("endpoints", n).Msg("Webhook endpoints registered")
			continue
		}
		ev := log.Warn()
		if allowUnknown {
			ev = log.Info()
		}
		ev.Str("platform", string(platform)).
			Int("endpoints", n).
			Bool("passthrough", allowUnknown).
			Msg("Endpoints use a platform without a verifier")
	}

	if total == 0 {
		log.Warn().Msg("No webhook endpoints registered")
	}
}
