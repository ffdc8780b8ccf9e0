package domain

import "time"

// WebhookEndpoint is a configured inbound webhook. The shared secret is only
// ever held encrypted at rest.
type WebhookEndpoint struct {
	ID               string    `json:"id"`
	Platform         Platform  `json:"platform"`
	SecretEnc        string    `json:"-"` // AES-256-GCM, never expose
	ToleranceSeconds int       `json:"tolerance_seconds"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Config builds the per-request verification input from a decrypted secret.
// A zero endpoint tolerance falls back to defaultTolerance.
func (e *WebhookEndpoint) Config(secret string, defaultTolerance int) WebhookConfig {
	tolerance := e.ToleranceSeconds
	if tolerance <= 0 {
		tolerance = defaultTolerance
	}
	return WebhookConfig{
		Platform:         e.Platform,
		Secret:           secret,
		ToleranceSeconds: tolerance,
	}
}
