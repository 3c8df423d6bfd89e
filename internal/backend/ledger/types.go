package ledger

import "publicapi/internal/model"

// Transaction types stored by ledger.
const (
	TypePayment = "PAYMENT"
	TypeRefund  = "REFUND"
	TypeDispute = "DISPUTE"
)

// Transaction is ledger's record of a payment, refund or dispute.
type Transaction struct {
	TransactionID          string                      `json:"transaction_id"`
	TransactionType        string                      `json:"transaction_type"`
	ParentTransactionID    string                      `json:"parent_transaction_id"`
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
	EvidenceDueDate        string                      `json:"evidence_due_date"`
	Reason                 string                      `json:"reason"`
}

// Event is an entry of a transaction's event history.
type Event struct {
	State     model.PaymentState `json:"state"`
	Timestamp string             `json:"timestamp"`
}

// Events is ledger's event history of a transaction.
type Events struct {
	TransactionID string  `json:"transaction_id"`
	Events        []Event `json:"events"`
}

// Refunds lists the refunds recorded against a payment.
type Refunds struct {
	ParentTransactionID string        `json:"parent_transaction_id"`
	Transactions        []Transaction `json:"transactions"`
}

// Agreement is ledger's record of a recurring payment agreement.
type Agreement struct {
	ExternalID        string                   `json:"external_id"`
	Reference         string                   `json:"reference"`
	Description       string                   `json:"description"`
	Status            string                   `json:"status"`
	CreatedDate       string                   `json:"created_date"`
	UserIdentifier    string                   `json:"user_identifier"`
	PaymentInstrument *model.PaymentInstrument `json:"payment_instrument"`
}

// TransactionSearch is a page of transactions.
type TransactionSearch = model.SearchResults[Transaction]

// AgreementSearch is a page of agreements.
type AgreementSearch = model.SearchResults[Agreement]
