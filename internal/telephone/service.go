// Package telephone records card payments taken over the telephone by an
// external provider.
package telephone

import (
	"context"
	"fmt"
	"log/slog"

	"publicapi/internal/backend/connector"
	"publicapi/internal/common/events"
	"publicapi/internal/model"
)

// Service provides telephone payment operations
type Service struct {
	connector *connector.Client
	publisher events.EventPublisher
	logger    *slog.Logger
}

// NewService creates a new telephone payment service
func NewService(c *connector.Client, publisher events.EventPublisher, logger *slog.Logger) *Service {
	return &Service{connector: c, publisher: publisher, logger: logger}
}

// Notify records a telephone payment. The second result is true when
// connector already held a record for the provider's payment.
func (s *Service) Notify(ctx context.Context, accountID string, req *model.TelephonePaymentRequest) (*model.TelephonePayment, bool, error) {
	payment, existing, err := s.connector.CreateTelephoneCharge(ctx, accountID, req)
	if err != nil {
		return nil, false, fmt.Errorf("creating telephone charge: %w", err)
	}

	s.logger.Info("telephone payment recorded",
		"payment_id", payment.PaymentID,
		"provider_id", req.ProviderID,
		"account_id", accountID,
		"existing", existing,
	)
	events.Emit(ctx, s.publisher, s.logger, events.EventTelephonePaymentSent, accountID,
		events.ResourcePayment, payment.PaymentID, events.TelephonePaymentData{
			ProviderID: req.ProviderID,
			Status:     req.PaymentOutcome.Status,
			Existing:   existing,
		})

	return payment, existing, nil
}
