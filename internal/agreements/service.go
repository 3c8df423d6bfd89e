// Package agreements serves recurring card payment agreements.
package agreements

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"publicapi/internal/backend/connector"
	"publicapi/internal/backend/ledger"
	"publicapi/internal/common/events"
	"publicapi/internal/hal"
	"publicapi/internal/model"
)

// Service provides agreement operations
type Service struct {
	connector *connector.Client
	ledger    *ledger.Client
	links     *hal.Builder
	publisher events.EventPublisher
	logger    *slog.Logger
}

// NewService creates a new agreement service
func NewService(c *connector.Client, l *ledger.Client, links *hal.Builder, publisher events.EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		connector: c,
		ledger:    l,
		links:     links,
		publisher: publisher,
		logger:    logger,
	}
}

// Create creates an agreement in connector
func (s *Service) Create(ctx context.Context, accountID string, req *model.CreateAgreementRequest) (*model.Agreement, error) {
	created, err := s.connector.CreateAgreement(ctx, accountID, req)
	if err != nil {
		return nil, fmt.Errorf("creating agreement: %w", err)
	}

	s.logger.Info("agreement created", "agreement_id", created.AgreementID, "account_id", accountID)
	events.Emit(ctx, s.publisher, s.logger, events.EventAgreementCreated, accountID,
		events.ResourceAgreement, created.AgreementID, nil)

	return s.build(&model.Agreement{
		AgreementID:    created.AgreementID,
		Reference:      created.Reference,
		Description:    created.Description,
		UserIdentifier: created.UserIdentifier,
		CreatedDate:    created.CreatedDate,
		Status:         model.AgreementCreated,
	}), nil
}

// Get retrieves an agreement from ledger
func (s *Service) Get(ctx context.Context, accountID, agreementID string) (*model.Agreement, error) {
	found, err := s.ledger.GetAgreement(ctx, accountID, agreementID)
	if err != nil {
		return nil, fmt.Errorf("getting agreement: %w", err)
	}
	return s.fromLedger(found), nil
}

// Search searches the account's agreements in ledger
func (s *Service) Search(ctx context.Context, accountID string, query url.Values) (*model.SearchResults[*model.Agreement], error) {
	found, err := s.ledger.SearchAgreements(ctx, accountID, query)
	if err != nil {
		return nil, fmt.Errorf("searching agreements: %w", err)
	}

	out := &model.SearchResults[*model.Agreement]{
		Total:   found.Total,
		Count:   found.Count,
		Page:    found.Page,
		Results: make([]*model.Agreement, 0, len(found.Results)),
		Links:   s.links.SearchLinks(found.Links, hal.AgreementsPath),
	}
	for i := range found.Results {
		out.Results = append(out.Results, s.fromLedger(&found.Results[i]))
	}
	return out, nil
}

// Cancel cancels an agreement in connector
func (s *Service) Cancel(ctx context.Context, accountID, agreementID string) error {
	if err := s.connector.CancelAgreement(ctx, accountID, agreementID); err != nil {
		return fmt.Errorf("cancelling agreement: %w", err)
	}
	s.logger.Info("agreement cancelled", "agreement_id", agreementID, "account_id", accountID)
	events.Emit(ctx, s.publisher, s.logger, events.EventAgreementCancelled, accountID,
		events.ResourceAgreement, agreementID, nil)
	return nil
}

func (s *Service) fromLedger(a *ledger.Agreement) *model.Agreement {
	return s.build(&model.Agreement{
		AgreementID:       a.ExternalID,
		Reference:         a.Reference,
		Description:       a.Description,
		Status:            strings.ToLower(a.Status),
		CreatedDate:       a.CreatedDate,
		UserIdentifier:    a.UserIdentifier,
		PaymentInstrument: a.PaymentInstrument,
	})
}

// build adds links. Only created and active agreements can be cancelled.
func (s *Service) build(a *model.Agreement) *model.Agreement {
	a.Links.Self = model.NewLink(s.links.Agreement(a.AgreementID), http.MethodGet)
	if a.Status == model.AgreementCreated || a.Status == model.AgreementActive {
		a.Links.Cancel = model.NewLink(s.links.AgreementCancel(a.AgreementID), http.MethodPost)
	}
	return a
}
