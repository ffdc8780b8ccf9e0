package service

import (
	"strconv"
	"strings"
	"time"
)

// ReplayGuard accepts a claimed signing timestamp only when it lies within
// the tolerance window around now.
type ReplayGuard struct {
	tolerance int64
	now       func() time.Time
}

// NewReplayGuard creates a guard with a tolerance in seconds. A nil clock uses time.Now.
func NewReplayGuard(toleranceSeconds int, now func() time.Time) *ReplayGuard {
	if now == nil {
		now = time.Now
	}
	return &ReplayGuard{tolerance: int64(toleranceSeconds), now: now}
}

// IsTimestampValid reports |now - claimed| <= tolerance for every int64 claim.
// The distance is taken in uint64, where it is exact and cannot wrap.
func (g *ReplayGuard) IsTimestampValid(claimedUnixSeconds int64) bool {
	if g.tolerance < 0 {
		return false
	}
	now := g.now().Unix()

	var drift uint64
	if claimedUnixSeconds >= now {
		drift = uint64(claimedUnixSeconds) - uint64(now)
	} else {
		drift = uint64(now) - uint64(claimedUnixSeconds)
	}
	return drift <= uint64(g.tolerance)
}

// parseUnixSeconds parses a decimal Unix timestamp header value.
func parseUnixSeconds(s string) (int64, bool) {
	ts, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}
