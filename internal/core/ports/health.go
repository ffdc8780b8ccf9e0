package ports

import "context"

// HealthChecker reports the health of a backing dependency for /health.
type HealthChecker interface {
	// Ping returns nil when the dependency is reachable.
	Ping(ctx context.Context) error
	// Name is the dependency label used in the health report ("postgresql", "redis").
	Name() string
}
