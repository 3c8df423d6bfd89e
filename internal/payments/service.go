// Package payments serves card payments: creation, lookup, events, search,
// cancellation and capture.
package payments

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"publicapi/internal/backend/connector"
	"publicapi/internal/backend/ledger"
	"publicapi/internal/common/events"
	"publicapi/internal/hal"
	"publicapi/internal/model"
	"publicapi/internal/strategy"
)

// SourceCardAPI marks charges created through the API.
const SourceCardAPI = "CARD_API"

// Service provides payment operations
type Service struct {
	connector *connector.Client
	ledger    *ledger.Client
	links     *hal.Builder
	publisher events.EventPublisher
	logger    *slog.Logger
}

// NewService creates a new payment service
func NewService(c *connector.Client, l *ledger.Client, links *hal.Builder, publisher events.EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		connector: c,
		ledger:    l,
		links:     links,
		publisher: publisher,
		logger:    logger,
	}
}

// Create creates a payment. The second result is true when connector already
// held a payment for idempotencyKey.
func (s *Service) Create(ctx context.Context, accountID string, req *model.CreatePaymentRequest, idempotencyKey string) (*model.Payment, bool, error) {
	charge, existing, err := s.connector.CreateCharge(ctx, accountID, ToChargeRequest(req), idempotencyKey)
	if err != nil {
		return nil, false, fmt.Errorf("creating charge: %w", err)
	}

	payment := FromCharge(charge, s.links)

	s.logger.Info("payment created",
		"payment_id", payment.PaymentID,
		"account_id", accountID,
		"replayed", existing,
	)
	events.Emit(ctx, s.publisher, s.logger, events.EventPaymentCreated, accountID,
		events.ResourcePayment, payment.PaymentID, events.PaymentCreatedData{
			Amount:            payment.Amount,
			Reference:         payment.Reference,
			AuthorisationMode: payment.AuthorisationMode,
			Replayed:          existing,
		})

	return payment, existing, nil
}

// Get retrieves a payment by ID
func (s *Service) Get(ctx context.Context, accountID, paymentID string, strat strategy.Strategy) (*model.Payment, error) {
	s.logger.Debug("reading payment", "payment_id", paymentID, "strategy", strat.String())
	return strategy.Execute(ctx, strat,
		func(ctx context.Context) (*model.Payment, error) {
			charge, err := s.connector.GetCharge(ctx, accountID, paymentID)
			if err != nil {
				return nil, err
			}
			return FromCharge(charge, s.links), nil
		},
		func(ctx context.Context) (*model.Payment, error) {
			tx, err := s.ledger.GetTransaction(ctx, accountID, paymentID, ledger.TypePayment, "")
			if err != nil {
				return nil, err
			}
			return FromTransaction(tx, s.links), nil
		},
	)
}

// Events retrieves the state history of a payment
func (s *Service) Events(ctx context.Context, accountID, paymentID string, strat strategy.Strategy) (*model.PaymentEvents, error) {
	s.logger.Debug("reading payment events", "payment_id", paymentID, "strategy", strat.String())
	return strategy.Execute(ctx, strat,
		func(ctx context.Context) (*model.PaymentEvents, error) {
			ce, err := s.connector.GetChargeEvents(ctx, accountID, paymentID)
			if err != nil {
				return nil, err
			}
			out := s.newEvents(paymentID)
			for _, e := range ce.Events {
				out.Events = append(out.Events, s.newEvent(paymentID, e.State, e.Updated))
			}
			return out, nil
		},
		func(ctx context.Context) (*model.PaymentEvents, error) {
			le, err := s.ledger.GetEvents(ctx, accountID, paymentID)
			if err != nil {
				return nil, err
			}
			out := s.newEvents(paymentID)
			for _, e := range le.Events {
				out.Events = append(out.Events, s.newEvent(paymentID, e.State, e.Timestamp))
			}
			return out, nil
		},
	)
}

func (s *Service) newEvents(paymentID string) *model.PaymentEvents {
	out := &model.PaymentEvents{PaymentID: paymentID, Events: []model.PaymentEvent{}}
	out.Links.Self = model.NewLink(s.links.PaymentEvents(paymentID), http.MethodGet)
	return out
}

func (s *Service) newEvent(paymentID string, state model.PaymentState, updated string) model.PaymentEvent {
	return model.PaymentEvent{
		PaymentID: paymentID,
		State:     state,
		Updated:   updated,
		Links: model.PaymentEventLinks{
			PaymentURL: model.NewLink(s.links.Payment(paymentID), http.MethodGet),
		},
	}
}

// Search searches the account's payments in ledger
func (s *Service) Search(ctx context.Context, accountID string, query url.Values) (*model.SearchResults[*model.Payment], error) {
	found, err := s.ledger.SearchTransactions(ctx, accountID, ledger.TypePayment, query)
	if err != nil {
		return nil, fmt.Errorf("searching payments: %w", err)
	}

	out := &model.SearchResults[*model.Payment]{
		Total:   found.Total,
		Count:   found.Count,
		Page:    found.Page,
		Results: make([]*model.Payment, 0, len(found.Results)),
		Links:   s.links.SearchLinks(found.Links, hal.PaymentsPath),
	}
	for i := range found.Results {
		out.Results = append(out.Results, FromTransaction(&found.Results[i], s.links))
	}
	return out, nil
}

// Cancel requests cancellation of a payment
func (s *Service) Cancel(ctx context.Context, accountID, paymentID string) error {
	if err := s.connector.CancelCharge(ctx, accountID, paymentID); err != nil {
		return fmt.Errorf("cancelling charge: %w", err)
	}
	s.logger.Info("payment cancel requested", "payment_id", paymentID, "account_id", accountID)
	events.Emit(ctx, s.publisher, s.logger, events.EventPaymentCancelled, accountID,
		events.ResourcePayment, paymentID, nil)
	return nil
}

// Capture requests capture of a delayed-capture payment
func (s *Service) Capture(ctx context.Context, accountID, paymentID string) error {
	if err := s.connector.CaptureCharge(ctx, accountID, paymentID); err != nil {
		return fmt.Errorf("capturing charge: %w", err)
	}
	s.logger.Info("payment capture requested", "payment_id", paymentID, "account_id", accountID)
	events.Emit(ctx, s.publisher, s.logger, events.EventPaymentCaptured, accountID,
		events.ResourcePayment, paymentID, nil)
	return nil
}
