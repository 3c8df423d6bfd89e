package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"publicapi/internal/common/middleware"
)

// Event represents an audit event envelope emitted by the gateway
type Event struct {
	ID            string          `json:"event_id"`
	Type          string          `json:"type"`
	Version       int             `json:"version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	CorrelationID string          `json:"correlation_id"`
	AccountID     string          `json:"gateway_account_id"`
	ResourceType  string          `json:"resource_type"`
	ResourceID    string          `json:"resource_id"`
	Data          json.RawMessage `json:"data,omitempty"`
}

// NewEvent creates a new event
func NewEvent(eventType, accountID, resourceType, resourceID string, data interface{}) (*Event, error) {
	var dataBytes json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		dataBytes = b
	}

	return &Event{
		ID:           ulid.Make().String(),
		Type:         eventType,
		Version:      1,
		OccurredAt:   time.Now().UTC(),
		AccountID:    accountID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Data:         dataBytes,
	}, nil
}

// WithCorrelation adds the correlation ID of the originating request
func (e *Event) WithCorrelation(correlationID string) *Event {
	e.CorrelationID = correlationID
	return e
}

// EventPublisher publishes events to a message broker
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

// Publish implements EventPublisher
func (NopPublisher) Publish(context.Context, *Event) error { return nil }

// Event types
const (
	EventPaymentCreated       = "payment.created"
	EventPaymentCancelled     = "payment.cancel_requested"
	EventPaymentCaptured      = "payment.capture_requested"
	EventRefundCreated        = "refund.created"
	EventAgreementCreated     = "agreement.created"
	EventAgreementCancelled   = "agreement.cancel_requested"
	EventMandateCreated       = "mandate.created"
	EventTelephonePaymentSent = "telephone_payment.notified"
)

// Resource types
const (
	ResourcePayment   = "payment"
	ResourceRefund    = "refund"
	ResourceAgreement = "agreement"
	ResourceMandate   = "mandate"
)

// PaymentCreatedData is the data for payment.created events
type PaymentCreatedData struct {
	Amount            int64  `json:"amount"`
	Reference         string `json:"reference"`
	AuthorisationMode string `json:"authorisation_mode,omitempty"`
	Replayed          bool   `json:"replayed"`
}

// RefundCreatedData is the data for refund.created events
type RefundCreatedData struct {
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
}

// TelephonePaymentData is the data for telephone_payment.notified events
type TelephonePaymentData struct {
	ProviderID string `json:"provider_id"`
	Status     string `json:"status"`
	Existing   bool   `json:"existing"`
}

// Emit builds and publishes an event. Failures are logged, never returned.
func Emit(ctx context.Context, pub EventPublisher, logger *slog.Logger, eventType, accountID, resourceType, resourceID string, data interface{}) {
	event, err := NewEvent(eventType, accountID, resourceType, resourceID, data)
	if err != nil {
		logger.Error("building event", "type", eventType, "error", err)
		return
	}
	event.WithCorrelation(middleware.GetCorrelationID(ctx))

	if err := pub.Publish(ctx, event); err != nil {
		logger.Error("publishing event",
			"type", eventType,
			"resource_id", resourceID,
			"error", err,
		)
	}
}
