package domain

import (
	"fmt"
	"io"
	"net/http"
	"sync"
)

// WebhookRequest is the raw inbound delivery as seen by a verifier.
// Header lookup is case-insensitive; the body is read once and cached so the
// exact transmitted bytes are what gets signed.
type WebhookRequest struct {
	header http.Header

	once sync.Once
	body io.Reader
	raw  []byte
	err  error
}

// NewWebhookRequest wraps headers and an unread body.
func NewWebhookRequest(header http.Header, body io.Reader) *WebhookRequest {
	if header == nil {
		header = http.Header{}
	}
	return &WebhookRequest{header: header, body: body}
}

// Header returns the first value for name, or "" when absent.
func (r *WebhookRequest) Header(name string) string {
	return r.header.Get(name)
}

// RawBody returns the request body bytes exactly as transmitted.
func (r *WebhookRequest) RawBody() ([]byte, error) {
	r.once.Do(func() {
		if r.body == nil {
			r.raw = []byte{}
			return
		}
		b, err := io.ReadAll(r.body)
		if err != nil {
			r.err = fmt.Errorf("reading webhook body: %w", err)
			return
		}
		r.raw = b
	})
	return r.raw, r.err
}
