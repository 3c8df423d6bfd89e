package model

// Telephone payment outcome statuses and failure codes.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// Supplemental carries processor error details of a failed outcome.
type Supplemental struct {
	ErrorCode    string `json:"error_code,omitempty" validate:"max=50"`
	ErrorMessage string `json:"error_message,omitempty" validate:"max=255"`
}

// PaymentOutcome is the result reported by the telephone payment provider.
type PaymentOutcome struct {
	Status       string        `json:"status" validate:"required,oneof=success failed"`
	Code         string        `json:"code,omitempty" validate:"omitempty,oneof=P0010 P0030 P0040 P0050"`
	Supplemental *Supplemental `json:"supplemental,omitempty"`
}

// TelephonePaymentRequest is the body of POST /v1/payment_notification.
type TelephonePaymentRequest struct {
	Amount          *int64          `json:"amount" validate:"required,min=1,max=10000000"`
	Reference       string          `json:"reference" validate:"required,max=255"`
	Description     string          `json:"description" validate:"required,max=255"`
	CreatedDate     string          `json:"created_date,omitempty" validate:"omitempty,iso_instant"`
	AuthorisedDate  string          `json:"authorised_date,omitempty" validate:"omitempty,iso_instant"`
	ProcessorID     string          `json:"processor_id" validate:"required,max=255"`
	ProviderID      string          `json:"provider_id" validate:"required,max=255"`
	AuthCode        string          `json:"auth_code,omitempty" validate:"omitempty,max=50"`
	PaymentOutcome  *PaymentOutcome `json:"payment_outcome" validate:"required"`
	CardType        string          `json:"card_type,omitempty" validate:"omitempty,oneof=master-card visa maestro diners-club american-express jcb unionpay"`
	NameOnCard      string          `json:"name_on_card,omitempty" validate:"omitempty,max=255"`
	EmailAddress    string          `json:"email_address,omitempty" validate:"omitempty,max=254"`
	CardExpiry      string          `json:"card_expiry,omitempty" validate:"omitempty,card_expiry"`
	LastFourDigits  string          `json:"last_four_digits,omitempty" validate:"omitempty,ndigits=4"`
	FirstSixDigits  string          `json:"first_six_digits,omitempty" validate:"omitempty,ndigits=6"`
	TelephoneNumber string          `json:"telephone_number,omitempty" validate:"omitempty,max=50"`
}

// TelephonePayment is the recorded telephone payment returned to the caller.
type TelephonePayment struct {
	Amount          int64           `json:"amount"`
	Reference       string          `json:"reference"`
	Description     string          `json:"description"`
	CreatedDate     string          `json:"created_date,omitempty"`
	AuthorisedDate  string          `json:"authorised_date,omitempty"`
	ProcessorID     string          `json:"processor_id"`
	ProviderID      string          `json:"provider_id"`
	AuthCode        string          `json:"auth_code,omitempty"`
	PaymentOutcome  *PaymentOutcome `json:"payment_outcome"`
	CardType        string          `json:"card_type,omitempty"`
	NameOnCard      string          `json:"name_on_card,omitempty"`
	EmailAddress    string          `json:"email_address,omitempty"`
	CardExpiry      string          `json:"card_expiry,omitempty"`
	LastFourDigits  string          `json:"last_four_digits,omitempty"`
	FirstSixDigits  string          `json:"first_six_digits,omitempty"`
	TelephoneNumber string          `json:"telephone_number,omitempty"`
	PaymentID       string          `json:"payment_id"`
	State           *PaymentState   `json:"state,omitempty"`
}
