package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound matches any lookup that found nothing, whether reported by a
// backend as 404 or decided locally.
var ErrNotFound = errors.New("resource not found")

// Error identifiers returned by connector in the error_identifier field.
const (
	IdentifierZeroAmountNotAllowed            = "ZERO_AMOUNT_NOT_ALLOWED"
	IdentifierMotoNotAllowed                  = "MOTO_NOT_ALLOWED"
	IdentifierAuthorisationAPINotAllowed      = "AUTHORISATION_API_NOT_ALLOWED"
	IdentifierAccountDisabled                 = "ACCOUNT_DISABLED"
	IdentifierAccountNotLinkedWithPSP         = "ACCOUNT_NOT_LINKED_WITH_PSP"
	IdentifierRecurringCardPaymentsNotAllowed = "RECURRING_CARD_PAYMENTS_NOT_ALLOWED"
	IdentifierAgreementNotFound               = "AGREEMENT_NOT_FOUND"
	IdentifierAgreementNotActive              = "AGREEMENT_NOT_ACTIVE"
	IdentifierIdempotencyKeyUsed              = "IDEMPOTENCY_KEY_USED"
	IdentifierRefundNotAvailable              = "REFUND_NOT_AVAILABLE"
	IdentifierRefundAmountAvailableMismatch   = "REFUND_AMOUNT_AVAILABLE_MISMATCH"
	IdentifierTelephoneNotificationsDisabled  = "TELEPHONE_PAYMENT_NOTIFICATIONS_NOT_ALLOWED"
	IdentifierCardNumberInReference           = "CARD_NUMBER_IN_PAYMENT_LINK_REFERENCE_REJECTED"
	IdentifierInvalidAttributeValue           = "INVALID_ATTRIBUTE_VALUE"
)

// Error is a failed backend call. StatusCode is zero when no response arrived.
type Error struct {
	Backend    string
	Method     string
	URL        string
	StatusCode int
	Identifier string
	Reason     string
	Messages   []string
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s %s: %v", e.Backend, e.Method, e.URL, e.Err)
	}
	msg := fmt.Sprintf("%s %s %s: status=%d", e.Backend, e.Method, e.URL, e.StatusCode)
	if e.Identifier != "" {
		msg += " identifier=" + e.Identifier
	}
	if len(e.Messages) > 0 {
		msg += " message=" + strings.Join(e.Messages, "; ")
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Message returns the first backend message, if any.
func (e *Error) Message() string {
	if len(e.Messages) == 0 {
		return ""
	}
	return e.Messages[0]
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var be *Error
	if errors.As(err, &be) {
		return be.StatusCode
	}
	return 0
}

// IdentifierOf returns the connector error identifier carried by err, or "".
func IdentifierOf(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Identifier
	}
	return ""
}

// errorBody is the error payload shared by connector and ledger. message is
// either a string or a list of strings.
type errorBody struct {
	Message    json.RawMessage `json:"message"`
	Identifier string          `json:"error_identifier"`
	Reason     string          `json:"reason"`
}

func decodeErrorBody(e *Error) {
	var body errorBody
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return
	}
	e.Identifier = body.Identifier
	e.Reason = body.Reason

	if len(body.Message) == 0 {
		return
	}
	var list []string
	if err := json.Unmarshal(body.Message, &list); err == nil {
		e.Messages = list
		return
	}
	var single string
	if err := json.Unmarshal(body.Message, &single); err == nil && single != "" {
		e.Messages = []string{single}
	}
}
