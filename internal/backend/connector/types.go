package connector

import "publicapi/internal/model"

// Link is a connector link. Connector lists links with a rel rather than
// keying them by name.
type Link struct {
	Rel    string            `json:"rel"`
	Method string            `json:"method"`
	Href   string            `json:"href"`
	Type   string            `json:"type,omitempty"`
	Params map[string]string `json:"params,omitempty"`
}

// Links is the link list of a connector resource.
type Links []Link

// Find returns the link with the given rel, or nil.
func (l Links) Find(rel string) *Link {
	for i := range l {
		if l[i].Rel == rel {
			return &l[i]
		}
	}
	return nil
}

// Link rels advertised by connector.
const (
	RelSelf        = "self"
	RelNextURL     = "next_url"
	RelNextURLPost = "next_url_post"
	RelAuthURLPost = "auth_url_post"
	RelRefunds     = "refunds"
	RelCancel      = "cancel"
	RelCapture     = "capture"
)

// Charge is connector's view of a card payment.
type Charge struct {
	ChargeID               string                      `json:"charge_id"`
	Amount                 int64                       `json:"amount"`
	Description            string                      `json:"description"`
	Reference              string                      `json:"reference"`
	Language               string                      `json:"language"`
	Email                  string                      `json:"email"`
	State                  model.PaymentState          `json:"state"`
	GatewayTransactionID   string                      `json:"gateway_transaction_id"`
	PaymentProvider        string                      `json:"payment_provider"`
	CreatedDate            string                      `json:"created_date"`
	RefundSummary          *model.RefundSummary        `json:"refund_summary"`
	SettlementSummary      *model.SettlementSummary    `json:"settlement_summary"`
	CardDetails            *model.CardDetails          `json:"card_details"`
	DelayedCapture         bool                        `json:"delayed_capture"`
	Moto                   bool                        `json:"moto"`
	CorporateCardSurcharge *int64                      `json:"corporate_card_surcharge"`
	TotalAmount            *int64                      `json:"total_amount"`
	Fee                    *int64                      `json:"fee"`
	NetAmount              *int64                      `json:"net_amount"`
	Metadata               map[string]any              `json:"metadata"`
	ReturnURL              string                      `json:"return_url"`
	AuthorisationSummary   *model.AuthorisationSummary `json:"authorisation_summary"`
	AgreementID            string                      `json:"agreement_id"`
	AuthorisationMode      string                      `json:"authorisation_mode"`
	Links                  Links                       `json:"links"`
}

// CreateChargeRequest is the body connector accepts for a new charge.
type CreateChargeRequest struct {
	Amount                     int64                             `json:"amount"`
	Reference                  string                            `json:"reference"`
	Description                string                            `json:"description"`
	ReturnURL                  string                            `json:"return_url,omitempty"`
	Language                   string                            `json:"language,omitempty"`
	Email                      string                            `json:"email,omitempty"`
	PrefilledCardholderDetails *model.PrefilledCardholderDetails `json:"prefilled_cardholder_details,omitempty"`
	DelayedCapture             *bool                             `json:"delayed_capture,omitempty"`
	Moto                       *bool                             `json:"moto,omitempty"`
	Metadata                   map[string]any                    `json:"metadata,omitempty"`
	SavePaymentInstrument      bool                              `json:"save_payment_instrument_to_agreement,omitempty"`
	AgreementID                string                            `json:"agreement_id,omitempty"`
	AuthorisationMode          string                            `json:"authorisation_mode,omitempty"`
	Source                     string                            `json:"source"`
}

// ChargeEvent is a single entry of a charge's event history.
type ChargeEvent struct {
	State   model.PaymentState `json:"state"`
	Updated string             `json:"updated"`
}

// ChargeEvents is connector's event history of a charge.
type ChargeEvents struct {
	ChargeID string        `json:"charge_id"`
	Events   []ChargeEvent `json:"events"`
}

// Refund is connector's view of a refund.
type Refund struct {
	RefundID          string                         `json:"refund_id"`
	Amount            int64                          `json:"amount"`
	Status            string                         `json:"status"`
	CreatedDate       string                         `json:"created_date"`
	SettlementSummary *model.RefundSettlementSummary `json:"settlement_summary"`
}

// Refunds lists the refunds of a charge.
type Refunds struct {
	PaymentID string `json:"payment_id"`
	Embedded  struct {
		Refunds []Refund `json:"refunds"`
	} `json:"_embedded"`
}

// CreateRefundRequest is the body connector accepts for a new refund.
type CreateRefundRequest struct {
	Amount                int64 `json:"amount"`
	RefundAmountAvailable int64 `json:"refund_amount_available"`
}

// Agreement is connector's view of a newly created agreement.
type Agreement struct {
	AgreementID    string `json:"agreement_id"`
	Reference      string `json:"reference"`
	Description    string `json:"description"`
	UserIdentifier string `json:"user_identifier"`
	CreatedDate    string `json:"created_date"`
}

// Mandate is connector's view of a direct debit mandate.
type Mandate struct {
	MandateID              string             `json:"mandate_id"`
	MandateReference       string             `json:"mandate_reference"`
	ServiceReference       string             `json:"service_reference"`
	BankStatementReference string             `json:"bank_statement_reference"`
	Description            string             `json:"description"`
	ReturnURL              string             `json:"return_url"`
	State                  model.MandateState `json:"state"`
	PaymentProvider        string             `json:"payment_provider"`
	CreatedDate            string             `json:"created_date"`
	Payer                  *model.Payer       `json:"payer"`
	Links                  Links              `json:"links"`
}

// CreateMandateRequest is the body connector accepts for a new mandate.
type CreateMandateRequest struct {
	ReturnURL        string `json:"return_url"`
	ServiceReference string `json:"service_reference"`
	Description      string `json:"description,omitempty"`
}

// MandateSearch is connector's paginated mandate search result.
type MandateSearch = model.SearchResults[Mandate]
