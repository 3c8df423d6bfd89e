// Package disputes serves searches over payment disputes recorded in ledger.
package disputes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"publicapi/internal/backend/ledger"
	"publicapi/internal/hal"
	"publicapi/internal/model"
)

// Service provides dispute operations
type Service struct {
	ledger *ledger.Client
	links  *hal.Builder
	logger *slog.Logger
}

// NewService creates a new dispute service
func NewService(l *ledger.Client, links *hal.Builder, logger *slog.Logger) *Service {
	return &Service{ledger: l, links: links, logger: logger}
}

// Search searches the account's disputes
func (s *Service) Search(ctx context.Context, accountID string, query url.Values) (*model.SearchResults[*model.Dispute], error) {
	found, err := s.ledger.SearchTransactions(ctx, accountID, ledger.TypeDispute, query)
	if err != nil {
		return nil, fmt.Errorf("searching disputes: %w", err)
	}

	out := &model.SearchResults[*model.Dispute]{
		Total:   found.Total,
		Count:   found.Count,
		Page:    found.Page,
		Results: make([]*model.Dispute, 0, len(found.Results)),
		Links:   s.links.SearchLinks(found.Links, hal.DisputesPath),
	}
	for i := range found.Results {
		out.Results = append(out.Results, s.fromLedger(&found.Results[i]))
	}
	return out, nil
}

func (s *Service) fromLedger(tx *ledger.Transaction) *model.Dispute {
	d := &model.Dispute{
		DisputeID:       tx.TransactionID,
		PaymentID:       tx.ParentTransactionID,
		Amount:          tx.Amount,
		Fee:             tx.Fee,
		NetAmount:       tx.NetAmount,
		CreatedDate:     tx.CreatedDate,
		EvidenceDueDate: tx.EvidenceDueDate,
		Reason:          tx.Reason,
		Status:          tx.State.Status,
		Links: model.DisputeLinks{
			Payment: model.NewLink(s.links.Payment(tx.ParentTransactionID), http.MethodGet),
		},
	}
	if tx.SettlementSummary != nil && tx.SettlementSummary.SettledDate != "" {
		d.SettlementSummary = &model.DisputeSettlementSummary{SettledDate: tx.SettlementSummary.SettledDate}
	}
	return d
}
