package payments

import (
	"net/http"

	"publicapi/internal/backend/connector"
	"publicapi/internal/backend/ledger"
	"publicapi/internal/hal"
	"publicapi/internal/model"
)

// FromCharge translates a connector charge into the public payment.
func FromCharge(c *connector.Charge, links *hal.Builder) *model.Payment {
	p := &model.Payment{
		Amount:                 c.Amount,
		Description:            c.Description,
		Reference:              c.Reference,
		Language:               c.Language,
		Email:                  c.Email,
		State:                  c.State,
		PaymentID:              c.ChargeID,
		PaymentProvider:        c.PaymentProvider,
		CreatedDate:            c.CreatedDate,
		RefundSummary:          c.RefundSummary,
		SettlementSummary:      c.SettlementSummary,
		CardDetails:            c.CardDetails,
		DelayedCapture:         c.DelayedCapture,
		Moto:                   c.Moto,
		CorporateCardSurcharge: c.CorporateCardSurcharge,
		TotalAmount:            c.TotalAmount,
		Fee:                    c.Fee,
		NetAmount:              c.NetAmount,
		ProviderID:             c.GatewayTransactionID,
		Metadata:               c.Metadata,
		ReturnURL:              c.ReturnURL,
		AuthorisationSummary:   c.AuthorisationSummary,
		AgreementID:            c.AgreementID,
		AuthorisationMode:      c.AuthorisationMode,
	}
	p.Links = baseLinks(c.ChargeID, links)

	if l := c.Links.Find(connector.RelNextURL); l != nil {
		p.Links.NextURL = model.NewLink(l.Href, http.MethodGet)
	}
	if l := c.Links.Find(connector.RelNextURLPost); l != nil {
		p.Links.NextURLPost = &model.Link{Href: l.Href, Method: http.MethodPost, Type: l.Type, Params: l.Params}
	}
	if l := c.Links.Find(connector.RelAuthURLPost); l != nil {
		p.Links.AuthURLPost = &model.Link{Href: l.Href, Method: http.MethodPost, Type: l.Type, Params: l.Params}
	}
	if c.Links.Find(connector.RelCancel) != nil {
		p.Links.Cancel = model.NewLink(links.PaymentCancel(c.ChargeID), http.MethodPost)
	}
	if c.Links.Find(connector.RelCapture) != nil {
		p.Links.Capture = model.NewLink(links.PaymentCapture(c.ChargeID), http.MethodPost)
	}
	return p
}

// FromTransaction translates a ledger payment transaction into the public
// payment. Ledger records carry no frontend or action links.
func FromTransaction(t *ledger.Transaction, links *hal.Builder) *model.Payment {
	return &model.Payment{
		Amount:                 t.Amount,
		Description:            t.Description,
		Reference:              t.Reference,
		Language:               t.Language,
		Email:                  t.Email,
		State:                  t.State,
		PaymentID:              t.TransactionID,
		PaymentProvider:        t.PaymentProvider,
		CreatedDate:            t.CreatedDate,
		RefundSummary:          t.RefundSummary,
		SettlementSummary:      t.SettlementSummary,
		CardDetails:            t.CardDetails,
		DelayedCapture:         t.DelayedCapture,
		Moto:                   t.Moto,
		CorporateCardSurcharge: t.CorporateCardSurcharge,
		TotalAmount:            t.TotalAmount,
		Fee:                    t.Fee,
		NetAmount:              t.NetAmount,
		ProviderID:             t.GatewayTransactionID,
		Metadata:               t.Metadata,
		ReturnURL:              t.ReturnURL,
		AuthorisationSummary:   t.AuthorisationSummary,
		AgreementID:            t.AgreementID,
		AuthorisationMode:      t.AuthorisationMode,
		Links:                  baseLinks(t.TransactionID, links),
	}
}

func baseLinks(id string, links *hal.Builder) model.PaymentLinks {
	return model.PaymentLinks{
		Self:    model.NewLink(links.Payment(id), http.MethodGet),
		Events:  model.NewLink(links.PaymentEvents(id), http.MethodGet),
		Refunds: model.NewLink(links.PaymentRefunds(id), http.MethodGet),
	}
}

// ToChargeRequest translates a public create request into connector's form.
func ToChargeRequest(req *model.CreatePaymentRequest) connector.CreateChargeRequest {
	out := connector.CreateChargeRequest{
		Reference:                  req.Reference,
		Description:                req.Description,
		ReturnURL:                  req.ReturnURL,
		Language:                   req.Language,
		Email:                      req.Email,
		PrefilledCardholderDetails: req.PrefilledCardholderDetails,
		DelayedCapture:             req.DelayedCapture,
		Moto:                       req.Moto,
		Metadata:                   req.Metadata,
		AgreementID:                req.AgreementID,
		AuthorisationMode:          req.AuthorisationMode,
		Source:                     SourceCardAPI,
	}
	if req.Amount != nil {
		out.Amount = *req.Amount
	}
	if req.Language == "" {
		out.Language = "en"
	}
	if req.SetUpAgreement != "" {
		out.AgreementID = req.SetUpAgreement
		out.SavePaymentInstrument = true
	}
	return out
}
