package model

// Agreement statuses.
const (
	AgreementCreated   = "created"
	AgreementActive    = "active"
	AgreementCancelled = "cancelled"
	AgreementExpired   = "expired"
	AgreementInactive  = "inactive"
)

// PaymentInstrument is the card an agreement charges.
type PaymentInstrument struct {
	Type        string       `json:"type,omitempty"`
	CardDetails *CardDetails `json:"card_details,omitempty"`
	CreatedDate string       `json:"created_date,omitempty"`
}

// AgreementLinks are the HAL links of an agreement.
type AgreementLinks struct {
	Self   *Link `json:"self"`
	Cancel *Link `json:"cancel,omitempty"`
}

// Agreement is a recurring card payment agreement.
type Agreement struct {
	AgreementID       string             `json:"agreement_id"`
	Reference         string             `json:"reference"`
	Description       string             `json:"description"`
	Status            string             `json:"status"`
	CreatedDate       string             `json:"created_date"`
	UserIdentifier    string             `json:"user_identifier,omitempty"`
	PaymentInstrument *PaymentInstrument `json:"payment_instrument,omitempty"`
	Links             AgreementLinks     `json:"_links"`
}

// CreateAgreementRequest is the body of POST /v1/agreements.
type CreateAgreementRequest struct {
	Reference      string `json:"reference" validate:"required,max=255"`
	Description    string `json:"description" validate:"required,max=255"`
	UserIdentifier string `json:"user_identifier,omitempty" validate:"omitempty,max=255"`
}
