package dto

// WebhookURI binds the path of POST /api/v1/webhooks/:endpoint_id.
type WebhookURI struct {
	EndpointID string `uri:"endpoint_id" binding:"required,max=64,safe_id"`
}

// WebhookAcceptedResponse is the response body for an authentic delivery.
type WebhookAcceptedResponse struct {
	EndpointID string            `json:"endpoint_id"`
	Platform   string            `json:"platform"`
	EventType  string            `json:"event_type,omitempty"`
	DeliveryID string            `json:"delivery_id,omitempty"`
	Metadata   map[string]string `json:"metadata"`
}

// DependencyStatus reports one backing service in GET /health.
type DependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]DependencyStatus `json:"dependencies"`
}
