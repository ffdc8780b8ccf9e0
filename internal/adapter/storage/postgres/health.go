package postgres

import (
	"context"
	"errors"
	"fmt"
)

var errSchemaMissing = errors.New("webhook_endpoints table is missing")

// HealthCheck reports PostgreSQL healthy when the endpoint registry is
// reachable and its table exists.
type HealthCheck struct {
	pool Pool
}

// NewHealthCheck creates a PostgreSQL health checker.
func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

// Ping checks connectivity, then the endpoint schema.
func (h *HealthCheck) Ping(ctx context.Context) error {
	if err := h.pool.Ping(ctx); err != nil {
		return err
	}

	var present bool
	if err := h.pool.QueryRow(ctx, `SELECT to_regclass('webhook_endpoints') IS NOT NULL`).Scan(&present); err != nil {
		return fmt.Errorf("checking endpoint schema: %w", err)
	}
	if !present {
		return errSchemaMissing
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "postgresql"
}
