// Package mandates serves direct debit mandates.
package mandates

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"publicapi/internal/backend/connector"
	"publicapi/internal/common/events"
	"publicapi/internal/hal"
	"publicapi/internal/model"
)

// Service provides mandate operations
type Service struct {
	connector *connector.Client
	links     *hal.Builder
	publisher events.EventPublisher
	logger    *slog.Logger
}

// NewService creates a new mandate service
func NewService(c *connector.Client, links *hal.Builder, publisher events.EventPublisher, logger *slog.Logger) *Service {
	return &Service{connector: c, links: links, publisher: publisher, logger: logger}
}

// Create creates a mandate
func (s *Service) Create(ctx context.Context, accountID string, req *model.CreateMandateRequest) (*model.Mandate, error) {
	created, err := s.connector.CreateMandate(ctx, accountID, connector.CreateMandateRequest{
		ReturnURL:        req.ReturnURL,
		ServiceReference: req.Reference,
		Description:      req.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("creating mandate: %w", err)
	}

	s.logger.Info("mandate created", "mandate_id", created.MandateID, "account_id", accountID)
	events.Emit(ctx, s.publisher, s.logger, events.EventMandateCreated, accountID,
		events.ResourceMandate, created.MandateID, nil)

	return s.fromConnector(created), nil
}

// Get retrieves a mandate
func (s *Service) Get(ctx context.Context, accountID, mandateID string) (*model.Mandate, error) {
	found, err := s.connector.GetMandate(ctx, accountID, mandateID)
	if err != nil {
		return nil, fmt.Errorf("getting mandate: %w", err)
	}
	return s.fromConnector(found), nil
}

// Search searches the account's mandates
func (s *Service) Search(ctx context.Context, accountID string, query url.Values) (*model.SearchResults[*model.Mandate], error) {
	found, err := s.connector.SearchMandates(ctx, accountID, query)
	if err != nil {
		return nil, fmt.Errorf("searching mandates: %w", err)
	}

	out := &model.SearchResults[*model.Mandate]{
		Total:   found.Total,
		Count:   found.Count,
		Page:    found.Page,
		Results: make([]*model.Mandate, 0, len(found.Results)),
		Links:   s.links.SearchLinks(found.Links, hal.MandatesPath),
	}
	for i := range found.Results {
		out.Results = append(out.Results, s.fromConnector(&found.Results[i]))
	}
	return out, nil
}

func (s *Service) fromConnector(m *connector.Mandate) *model.Mandate {
	out := &model.Mandate{
		MandateID:              m.MandateID,
		ProviderID:             m.MandateReference,
		Reference:              m.ServiceReference,
		BankStatementReference: m.BankStatementReference,
		Description:            m.Description,
		ReturnURL:              m.ReturnURL,
		State:                  m.State,
		PaymentProvider:        m.PaymentProvider,
		CreatedDate:            m.CreatedDate,
		Payer:                  m.Payer,
		Links: model.MandateLinks{
			Self: model.NewLink(s.links.Mandate(m.MandateID), http.MethodGet),
		},
	}
	if l := m.Links.Find(connector.RelNextURL); l != nil {
		out.Links.NextURL = model.NewLink(l.Href, http.MethodGet)
	}
	if l := m.Links.Find(connector.RelNextURLPost); l != nil {
		out.Links.NextURLPost = &model.Link{Href: l.Href, Method: http.MethodPost, Type: l.Type, Params: l.Params}
	}
	return out
}
