package domain

// DefaultToleranceSeconds is the replay window applied when a config leaves it unset.
const DefaultToleranceSeconds = 300

// Metadata keys surfaced on verified results.
const (
	MetaDeliveryID = "delivery_id"
	MetaEventType  = "event_type"
	MetaTimestamp  = "timestamp"
	MetaWebhookID  = "webhook_id"
)

// WebhookConfig is the caller-supplied verification input for a single request.
type WebhookConfig struct {
	Platform         Platform
	Secret           string
	ToleranceSeconds int
}

// Tolerance returns the effective replay window in seconds.
func (c WebhookConfig) Tolerance() int {
	if c.ToleranceSeconds <= 0 {
		return DefaultToleranceSeconds
	}
	return c.ToleranceSeconds
}

// FailureReason classifies a rejected verification.
type FailureReason string

const (
	ReasonNone               FailureReason = ""
	ReasonMissingHeaders     FailureReason = "missing_headers"
	ReasonMalformedSignature FailureReason = "malformed_signature"
	ReasonStaleTimestamp     FailureReason = "stale_timestamp"
	ReasonSignatureMismatch  FailureReason = "signature_mismatch"
	ReasonSecretResolution   FailureReason = "secret_resolution"
	ReasonUnknownPlatform    FailureReason = "unknown_platform"
	ReasonInternal           FailureReason = "internal"
)

// VerificationResult is the verdict for one inbound webhook.
// Payload and Metadata are only ever set on valid results.
type VerificationResult struct {
	IsValid  bool                   `json:"is_valid"`
	Error    string                 `json:"error,omitempty"`
	Platform Platform               `json:"platform"`
	Reason   FailureReason          `json:"reason,omitempty"`
	Payload  map[string]interface{} `json:"payload,omitempty"`
	Metadata map[string]string      `json:"metadata,omitempty"`
}

// NewVerified builds a successful result. A nil payload means the body was
// authentic but not a JSON object.
func NewVerified(platform Platform, payload map[string]interface{}, metadata map[string]string) *VerificationResult {
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &VerificationResult{
		IsValid:  true,
		Platform: platform,
		Payload:  payload,
		Metadata: metadata,
	}
}

// NewRejected builds a failed result carrying no payload or metadata.
func NewRejected(platform Platform, reason FailureReason, message string) *VerificationResult {
	return &VerificationResult{
		IsValid:  false,
		Error:    message,
		Platform: platform,
		Reason:   reason,
	}
}
