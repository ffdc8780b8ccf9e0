package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"webhook-verifier/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// newTestRequest builds an inbound delivery from header pairs and a body.
func newTestRequest(headers map[string]string, body string) *domain.WebhookRequest {
	h := http.Header{}
	for k, v := range headers {
		h.Set(k, v)
	}
	return domain.NewWebhookRequest(h, strings.NewReader(body))
}

// failingReader errors on every read.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

// mutateByte flips the first byte of s.
func mutateByte(s string) string {
	b := []byte(s)
	b[0] ^= 0x01
	return string(b)
}

func assertRejected(t *testing.T, result *domain.VerificationResult, platform domain.Platform, reason domain.FailureReason) {
	t.Helper()
	assert.False(t, result.IsValid)
	assert.Equal(t, platform, result.Platform)
	assert.Equal(t, reason, result.Reason)
	assert.NotEmpty(t, result.Error)
	assert.Nil(t, result.Payload)
	assert.Nil(t, result.Metadata)
}

func TestParsePayload(t *testing.T) {
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, parsePayload([]byte(`{"a":1}`)))
	assert.Nil(t, parsePayload([]byte(`not json`)))
	assert.Nil(t, parsePayload([]byte(`[1,2,3]`)))
	assert.Nil(t, parsePayload([]byte{}))
}

func TestPayloadString(t *testing.T) {
	payload := map[string]interface{}{"type": "user.created", "count": float64(3)}

	assert.Equal(t, "user.created", payloadString(payload, "type"))
	assert.Empty(t, payloadString(payload, "count"))
	assert.Empty(t, payloadString(payload, "missing"))
	assert.Empty(t, payloadString(nil, "type"))
}

func TestPassthroughVerifier(t *testing.T) {
	v := passthroughVerifier{platform: domain.Platform("acme")}

	result := v.Verify(context.Background(), newTestRequest(nil, `{"ok":true}`))

	assert.True(t, result.IsValid)
	assert.Equal(t, domain.Platform("acme"), result.Platform)
	assert.Equal(t, true, result.Payload["ok"])
}
