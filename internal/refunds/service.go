// Package refunds serves refunds of card payments.
package refunds

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

// Service provides refund operations
type Service struct {
	connector *connector.Client
	ledger    *ledger.Client
	links     *hal.Builder
	publisher events.EventPublisher
	logger    *slog.Logger
}

// NewService creates a new refund service
func NewService(c *connector.Client, l *ledger.Client, links *hal.Builder, publisher events.EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		connector: c,
		ledger:    l,
		links:     links,
		publisher: publisher,
		logger:    logger,
	}
}

// Create submits a refund. When the request does not state the amount
// available for refund, the payment's current refund summary is used.
func (s *Service) Create(ctx context.Context, accountID, paymentID string, req *model.CreateRefundRequest) (*model.Refund, error) {
	var available int64
	if req.RefundAmountAvailable != nil {
		available = *req.RefundAmountAvailable
	} else {
		charge, err := s.connector.GetCharge(ctx, accountID, paymentID)
		if err != nil {
			return nil, fmt.Errorf("getting charge for refund: %w", err)
		}
		if charge.RefundSummary != nil {
			available = charge.RefundSummary.AmountAvailable
		}
	}

	refund, err := s.connector.CreateRefund(ctx, accountID, paymentID, connector.CreateRefundRequest{
		Amount:                *req.Amount,
		RefundAmountAvailable: available,
	})
	if err != nil {
		return nil, fmt.Errorf("creating refund: %w", err)
	}

	s.logger.Info("refund created",
		"refund_id", refund.RefundID,
		"payment_id", paymentID,
		"account_id", accountID,
	)
	events.Emit(ctx, s.publisher, s.logger, events.EventRefundCreated, accountID,
		events.ResourceRefund, refund.RefundID, events.RefundCreatedData{
			PaymentID: paymentID,
			Amount:    refund.Amount,
		})

	return s.fromConnector(paymentID, refund), nil
}

// List retrieves the refunds of a payment
func (s *Service) List(ctx context.Context, accountID, paymentID string, strat strategy.Strategy) (*model.PaymentRefunds, error) {
	s.logger.Debug("listing refunds", "payment_id", paymentID, "strategy", strat.String())
	return strategy.ConnectorUnlessLedger(ctx, strat,
		func(ctx context.Context) (*model.PaymentRefunds, error) {
			found, err := s.connector.GetRefunds(ctx, accountID, paymentID)
			if err != nil {
				return nil, err
			}
			out := s.newPaymentRefunds(paymentID)
			for i := range found.Embedded.Refunds {
				out.Embedded.Refunds = append(out.Embedded.Refunds, *s.fromConnector(paymentID, &found.Embedded.Refunds[i]))
			}
			return out, nil
		},
		func(ctx context.Context) (*model.PaymentRefunds, error) {
			found, err := s.ledger.GetRefunds(ctx, accountID, paymentID)
			if err != nil {
				return nil, err
			}
			out := s.newPaymentRefunds(paymentID)
			for i := range found.Transactions {
				out.Embedded.Refunds = append(out.Embedded.Refunds, *s.fromLedger(paymentID, &found.Transactions[i]))
			}
			return out, nil
		},
	)
}

// Get retrieves a single refund of a payment
func (s *Service) Get(ctx context.Context, accountID, paymentID, refundID string, strat strategy.Strategy) (*model.Refund, error) {
	s.logger.Debug("reading refund", "refund_id", refundID, "strategy", strat.String())
	return strategy.Execute(ctx, strat,
		func(ctx context.Context) (*model.Refund, error) {
			refund, err := s.connector.GetRefund(ctx, accountID, paymentID, refundID)
			if err != nil {
				return nil, err
			}
			return s.fromConnector(paymentID, refund), nil
		},
		func(ctx context.Context) (*model.Refund, error) {
			tx, err := s.ledger.GetTransaction(ctx, accountID, refundID, ledger.TypeRefund, paymentID)
			if err != nil {
				return nil, err
			}
			return s.fromLedger(paymentID, tx), nil
		},
	)
}

// Search searches the account's refunds in ledger
func (s *Service) Search(ctx context.Context, accountID string, query url.Values) (*model.SearchResults[*model.Refund], error) {
	found, err := s.ledger.SearchTransactions(ctx, accountID, ledger.TypeRefund, query)
	if err != nil {
		return nil, fmt.Errorf("searching refunds: %w", err)
	}

	out := &model.SearchResults[*model.Refund]{
		Total:   found.Total,
		Count:   found.Count,
		Page:    found.Page,
		Results: make([]*model.Refund, 0, len(found.Results)),
		Links:   s.links.SearchLinks(found.Links, hal.RefundsPath),
	}
	for i := range found.Results {
		tx := &found.Results[i]
		refund := s.fromLedger(tx.ParentTransactionID, tx)
		refund.PaymentID = tx.ParentTransactionID
		out.Results = append(out.Results, refund)
	}
	return out, nil
}

func (s *Service) newPaymentRefunds(paymentID string) *model.PaymentRefunds {
	out := &model.PaymentRefunds{
		PaymentID: paymentID,
		Links: model.RefundLinks{
			Self:    model.NewLink(s.links.PaymentRefunds(paymentID), http.MethodGet),
			Payment: model.NewLink(s.links.Payment(paymentID), http.MethodGet),
		},
	}
	out.Embedded.Refunds = []model.Refund{}
	return out
}

func (s *Service) refundLinks(paymentID, refundID string) model.RefundLinks {
	return model.RefundLinks{
		Self:    model.NewLink(s.links.PaymentRefund(paymentID, refundID), http.MethodGet),
		Payment: model.NewLink(s.links.Payment(paymentID), http.MethodGet),
	}
}

func (s *Service) fromConnector(paymentID string, r *connector.Refund) *model.Refund {
	return &model.Refund{
		RefundID:          r.RefundID,
		CreatedDate:       r.CreatedDate,
		Amount:            r.Amount,
		Status:            r.Status,
		SettlementSummary: r.SettlementSummary,
		Links:             s.refundLinks(paymentID, r.RefundID),
	}
}

func (s *Service) fromLedger(paymentID string, tx *ledger.Transaction) *model.Refund {
	refund := &model.Refund{
		RefundID:    tx.TransactionID,
		CreatedDate: tx.CreatedDate,
		Amount:      tx.Amount,
		Status:      tx.State.Status,
		Links:       s.refundLinks(paymentID, tx.TransactionID),
	}
	if tx.SettlementSummary != nil && tx.SettlementSummary.SettledDate != "" {
		refund.SettlementSummary = &model.RefundSettlementSummary{SettledDate: tx.SettlementSummary.SettledDate}
	}
	return refund
}
