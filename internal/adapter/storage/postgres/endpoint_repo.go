package postgres

import (
	"context"
	"errors"
	"fmt"

	"webhook-verifier/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// EndpointRepo implements ports.WebhookEndpointRepository.
type EndpointRepo struct {
	pool Pool
}

// NewEndpointRepo creates a new EndpointRepo.
func NewEndpointRepo(pool Pool) *EndpointRepo {
	return &EndpointRepo{pool: pool}
}

// GetByID fetches an endpoint by id. Returns nil, nil when absent.
func (r *EndpointRepo) GetByID(ctx context.Context, id string) (*domain.WebhookEndpoint, error) {
	query := `SELECT id, platform, secret_enc, tolerance_seconds, created_at, updated_at
		FROM webhook_endpoints WHERE id = $1`

	e := &domain.WebhookEndpoint{}
	var platform string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID, &platform, &e.SecretEnc, &e.ToleranceSeconds,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get webhook endpoint by id: %w", err)
	}
	e.Platform = domain.ParsePlatform(platform)
	return e, nil
}

// CountByPlatform returns the number of stored endpoints per platform.
func (r *EndpointRepo) CountByPlatform(ctx context.Context) (map[domain.Platform]int, error) {
	query := `SELECT platform, COUNT(*) FROM webhook_endpoints GROUP BY platform`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count webhook endpoints: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Platform]int)
	for rows.Next() {
		var platform string
		var n int64
		if err := rows.Scan(&platform, &n); err != nil {
			return nil, fmt.Errorf("scan platform count: %w", err)
		}
		counts[domain.ParsePlatform(platform)] += int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate platform counts: %w", err)
	}
	return counts, nil
}
