package handler

import (
	"errors"
	"net/http"

	"webhook-verifier/internal/adapter/http/dto"
	"webhook-verifier/internal/core/domain"
	"webhook-verifier/internal/core/ports"
	"webhook-verifier/pkg/apperror"
	"webhook-verifier/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// WebhookHandler receives inbound webhook deliveries.
type WebhookHandler struct {
	endpoints        ports.WebhookEndpointRepository
	encSvc           ports.EncryptionService
	verifySvc        ports.VerificationService
	guard            ports.DeliveryGuard // nil = de-duplication disabled
	defaultTolerance int
	log              zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(
	endpoints ports.WebhookEndpointRepository,
	encSvc ports.EncryptionService,
	verifySvc ports.VerificationService,
	guard ports.DeliveryGuard,
	defaultTolerance int,
	log zerolog.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		endpoints:        endpoints,
		encSvc:           encSvc,
		verifySvc:        verifySvc,
		guard:            guard,
		defaultTolerance: defaultTolerance,
		log:              log,
	}
}

// Receive handles POST /api/v1/webhooks/:endpoint_id.
// Pipeline: load endpoint -> decrypt secret -> verify -> de-duplicate.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var uri dto.WebhookURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation("invalid endpoint_id"))
		return
	}

	ctx := c.Request.Context()
	log := h.log.With().
		Str("request_id", c.GetString(response.RequestIDKey)).
		Str("endpoint_id", uri.EndpointID).
		Logger()

	endpoint, err := h.endpoints.GetByID(ctx, uri.EndpointID)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch webhook endpoint")
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}
	if endpoint == nil {
		response.Error(c, apperror.ErrEndpointNotFound())
		return
	}

	secret, err := h.encSvc.Decrypt(endpoint.SecretEnc)
	if err != nil {
		log.Error().Err(err).Msg("failed to decrypt webhook secret")
		response.Error(c, apperror.ErrEncryptionFailure(err))
		return
	}

	req := domain.NewWebhookRequest(c.Request.Header, c.Request.Body)
	body, err := req.RawBody()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, apperror.ErrPayloadTooLarge())
			return
		}
		// Other read failures surface as a rejected verification.
		log.Warn().Err(err).Msg("failed to read webhook body")
	}

	result := h.verifySvc.Verify(ctx, req, endpoint.Config(secret, h.defaultTolerance))
	if !result.IsValid {
		response.Error(c, rejectionError(result))
		return
	}

	if endpoint.Platform == domain.PlatformCustom && result.Metadata[domain.MetaWebhookID] != endpoint.ID {
		log.Warn().Str("webhook_id", result.Metadata[domain.MetaWebhookID]).Msg("custom webhook id does not match endpoint")
		response.Error(c, apperror.ErrInvalidSignature("Custom webhook id does not match endpoint"))
		return
	}

	if h.guard != nil {
		fresh, err := h.guard.Accept(ctx, endpoint.ID, result, body)
		if err != nil {
			log.Warn().Err(err).Msg("delivery store error, allowing request")
		} else if !fresh {
			response.Error(c, apperror.ErrDuplicateDelivery())
			return
		}
	}

	log.Info().
		Str("platform", string(result.Platform)).
		Str("event_type", result.Metadata[domain.MetaEventType]).
		Str("delivery_id", result.Metadata[domain.MetaDeliveryID]).
		Msg("webhook accepted")

	response.OK(c, dto.WebhookAcceptedResponse{
		EndpointID: endpoint.ID,
		Platform:   string(result.Platform),
		EventType:  result.Metadata[domain.MetaEventType],
		DeliveryID: result.Metadata[domain.MetaDeliveryID],
		Metadata:   result.Metadata,
	})
}

// rejectionError maps a failed verification to its HTTP error.
// Only a stale timestamp is 403; every other failure is 401.
func rejectionError(result *domain.VerificationResult) *apperror.AppError {
	switch result.Reason {
	case domain.ReasonMissingHeaders:
		return apperror.ErrMissingHeaders(result.Error)
	case domain.ReasonStaleTimestamp:
		return apperror.ErrTimestampExpired(result.Error)
	case domain.ReasonUnknownPlatform:
		return apperror.ErrUnsupportedPlatform(result.Error)
	default:
		return apperror.ErrInvalidSignature(result.Error)
	}
}
