package model

// Authorisation modes.
const (
	AuthorisationModeWeb       = "web"
	AuthorisationModeAgreement = "agreement"
	AuthorisationModeMotoAPI   = "moto_api"
	AuthorisationModeExternal  = "external"
)

// PaymentState is the externally visible state of a payment.
type PaymentState struct {
	Status   string `json:"status"`
	Finished bool   `json:"finished"`
	Message  string `json:"message,omitempty"`
	Code     string `json:"code,omitempty"`
	CanRetry *bool  `json:"can_retry,omitempty"`
}

// RefundSummary reports how much of a payment can still be refunded.
type RefundSummary struct {
	Status          string `json:"status"`
	AmountAvailable int64  `json:"amount_available"`
	AmountSubmitted int64  `json:"amount_submitted"`
}

// SettlementSummary reports capture and settlement progress.
type SettlementSummary struct {
	CaptureSubmitTime string `json:"capture_submit_time,omitempty"`
	CapturedDate      string `json:"captured_date,omitempty"`
	SettledDate       string `json:"settled_date,omitempty"`
}

// ThreeDSecure reports whether 3-D Secure was required.
type ThreeDSecure struct {
	Required bool `json:"required"`
}

// AuthorisationSummary groups authorisation details.
type AuthorisationSummary struct {
	ThreeDSecure *ThreeDSecure `json:"three_d_secure,omitempty"`
}

// PaymentLinks are the HAL links of a payment.
type PaymentLinks struct {
	Self        *Link `json:"self"`
	NextURL     *Link `json:"next_url"`
	NextURLPost *Link `json:"next_url_post"`
	AuthURLPost *Link `json:"auth_url_post,omitempty"`
	Events      *Link `json:"events"`
	Refunds     *Link `json:"refunds"`
	Cancel      *Link `json:"cancel,omitempty"`
	Capture     *Link `json:"capture,omitempty"`
}

// Payment is the public representation of a card payment.
type Payment struct {
	Amount                 int64                 `json:"amount"`
	Description            string                `json:"description"`
	Reference              string                `json:"reference"`
	Language               string                `json:"language,omitempty"`
	Email                  string                `json:"email,omitempty"`
	State                  PaymentState          `json:"state"`
	PaymentID              string                `json:"payment_id"`
	PaymentProvider        string                `json:"payment_provider"`
	CreatedDate            string                `json:"created_date"`
	RefundSummary          *RefundSummary        `json:"refund_summary,omitempty"`
	SettlementSummary      *SettlementSummary    `json:"settlement_summary,omitempty"`
	CardDetails            *CardDetails          `json:"card_details,omitempty"`
	DelayedCapture         bool                  `json:"delayed_capture"`
	Moto                   bool                  `json:"moto"`
	CorporateCardSurcharge *int64                `json:"corporate_card_surcharge,omitempty"`
	TotalAmount            *int64                `json:"total_amount,omitempty"`
	Fee                    *int64                `json:"fee,omitempty"`
	NetAmount              *int64                `json:"net_amount,omitempty"`
	ProviderID             string                `json:"provider_id,omitempty"`
	Metadata               map[string]any        `json:"metadata,omitempty"`
	ReturnURL              string                `json:"return_url,omitempty"`
	AuthorisationSummary   *AuthorisationSummary `json:"authorisation_summary,omitempty"`
	AgreementID            string                `json:"agreement_id,omitempty"`
	AuthorisationMode      string                `json:"authorisation_mode,omitempty"`
	Links                  PaymentLinks          `json:"_links"`
}

// PrefilledCardholderDetails pre-populates the payment page.
type PrefilledCardholderDetails struct {
	CardholderName string   `json:"cardholder_name,omitempty" validate:"max=255"`
	BillingAddress *Address `json:"billing_address,omitempty"`
}

// CreatePaymentRequest is the body of POST /v1/payments.
type CreatePaymentRequest struct {
	Amount                     *int64                      `json:"amount" validate:"required,max=10000000"`
	Reference                  string                      `json:"reference" validate:"required,max=255"`
	Description                string                      `json:"description" validate:"required,max=255"`
	ReturnURL                  string                      `json:"return_url,omitempty" validate:"omitempty,max=2000,http_url"`
	Language                   string                      `json:"language,omitempty" validate:"omitempty,oneof=en cy"`
	Email                      string                      `json:"email,omitempty" validate:"omitempty,max=254"`
	PrefilledCardholderDetails *PrefilledCardholderDetails `json:"prefilled_cardholder_details,omitempty"`
	DelayedCapture             *bool                       `json:"delayed_capture,omitempty"`
	Moto                       *bool                       `json:"moto,omitempty"`
	Metadata                   map[string]any              `json:"metadata,omitempty"`
	SetUpAgreement             string                      `json:"set_up_agreement,omitempty" validate:"omitempty,len=26"`
	AgreementID                string                      `json:"agreement_id,omitempty" validate:"omitempty,len=26"`
	AuthorisationMode          string                      `json:"authorisation_mode,omitempty" validate:"omitempty,oneof=web agreement moto_api external"`
}

// PaymentEventLinks links an event back to its payment.
type PaymentEventLinks struct {
	PaymentURL *Link `json:"payment_url"`
}

// PaymentEvent is a single state change of a payment.
type PaymentEvent struct {
	PaymentID string            `json:"payment_id"`
	State     PaymentState      `json:"state"`
	Updated   string            `json:"updated"`
	Links     PaymentEventLinks `json:"_links"`
}

// PaymentEvents is the response of GET /v1/payments/{paymentId}/events.
type PaymentEvents struct {
	PaymentID string         `json:"payment_id"`
	Events    []PaymentEvent `json:"events"`
	Links     struct {
		Self *Link `json:"self"`
	} `json:"_links"`
}
