package apierror

import (
	"errors"
	"net/http"
	"strings"

	"publicapi/internal/backend"
	"publicapi/internal/validation"
)

func asValidation(err error) (*validation.Error, bool) {
	var ve *validation.Error
	ok := errors.As(err, &ve)
	return ve, ok
}

// passthrough keeps the code and status of d but serves the connector's own
// message when it sent one.
func passthrough(d Definition, err error) Definition {
	var be *backend.Error
	if errors.As(err, &be) && be.Message() != "" {
		return Definition{Status: d.Status, Code: d.Code, Format: be.Message()}
	}
	return d
}

// byStatus picks the definition for the backend status carried by err,
// falling back to def.
func byStatus(err error, table map[int]Definition, def Definition) Definition {
	if d, ok := table[backend.StatusOf(err)]; ok {
		return d
	}
	return def
}

// Validation renders a validation failure in the generic request scheme.
func Validation(err *validation.Error) *RequestError {
	return &RequestError{requestValidation.render(err)}
}

// PaymentValidation renders a validation failure in the payment scheme.
func PaymentValidation(err *validation.Error) *PaymentError {
	return &PaymentError{requestValidation.render(err)}
}

// CreatePayment maps a failed payment creation.
func CreatePayment(err error) Problem {
	if ve, ok := asValidation(err); ok {
		return PaymentValidation(ve)
	}

	switch backend.IdentifierOf(err) {
	case backend.IdentifierZeroAmountNotAllowed:
		return NewPaymentError(CreatePaymentZeroAmountNotAllowed)
	case backend.IdentifierMotoNotAllowed:
		return NewPaymentError(CreatePaymentMotoNotEnabled)
	case backend.IdentifierAuthorisationAPINotAllowed:
		return NewPaymentError(CreatePaymentAuthorisationAPINotEnabled)
	case backend.IdentifierAccountDisabled:
		return NewPaymentError(AccountDisabled)
	case backend.IdentifierAccountNotLinkedWithPSP:
		return NewPaymentError(AccountNotLinkedWithPSP)
	case backend.IdentifierRecurringCardPaymentsNotAllowed:
		return NewPaymentError(RecurringCardPaymentsNotAllowed)
	case backend.IdentifierAgreementNotFound:
		return NewPaymentError(CreatePaymentAgreementNotFound)
	case backend.IdentifierAgreementNotActive:
		return NewPaymentError(CreatePaymentAgreementNotActive)
	case backend.IdentifierIdempotencyKeyUsed:
		return NewPaymentError(CreatePaymentIdempotencyKeyUsed)
	case backend.IdentifierCardNumberInReference:
		return NewPaymentError(CreatePaymentCardNumberInReference)
	case backend.IdentifierInvalidAttributeValue:
		return NewPaymentError(passthrough(Definition{http.StatusUnprocessableEntity, "P0102", "Invalid attribute value"}, err))
	}

	switch backend.StatusOf(err) {
	case http.StatusNotFound:
		return NewPaymentError(CreatePaymentAccountError)
	case http.StatusConflict:
		return NewPaymentError(CreatePaymentIdempotencyKeyUsed)
	case http.StatusUnprocessableEntity:
		return NewPaymentError(passthrough(Definition{http.StatusUnprocessableEntity, "P0102", "Invalid attribute value"}, err))
	}
	return NewPaymentError(CreatePaymentConnectorError)
}

// GetPayment maps a failed payment lookup.
func GetPayment(err error) Problem {
	if errors.Is(err, backend.ErrNotFound) {
		return NewPaymentError(GetPaymentNotFound)
	}
	return NewPaymentError(GetPaymentConnectorError)
}

// GetPaymentEvents maps a failed payment events lookup.
func GetPaymentEvents(err error) Problem {
	if errors.Is(err, backend.ErrNotFound) {
		return NewPaymentError(GetPaymentEventsNotFound)
	}
	return NewPaymentError(GetPaymentEventsConnectorError)
}

// SearchPayments maps invalid parameters or a failed payment search.
func SearchPayments(invalid []string, err error) Problem {
	if len(invalid) > 0 {
		return NewPaymentError(SearchPaymentsValidation, validation.JoinNames(invalid))
	}
	if errors.Is(err, backend.ErrNotFound) {
		return NewPaymentError(SearchPaymentsNotFound)
	}
	return NewPaymentError(SearchPaymentsConnectorError)
}

// CancelPayment maps a failed cancellation.
func CancelPayment(err error) Problem {
	return NewPaymentError(byStatus(err, map[int]Definition{
		http.StatusNotFound:   CancelPaymentNotFound,
		http.StatusBadRequest: CancelPaymentBadRequest,
		http.StatusConflict:   CancelPaymentConflict,
	}, CancelPaymentConnectorError))
}

// CapturePayment maps a failed capture.
func CapturePayment(err error) Problem {
	return NewPaymentError(byStatus(err, map[int]Definition{
		http.StatusNotFound:   CapturePaymentNotFound,
		http.StatusBadRequest: CapturePaymentBadRequest,
		http.StatusConflict:   CapturePaymentConflict,
	}, CapturePaymentConnectorError))
}

// GetPaymentRefunds maps a failed refund list for a payment.
func GetPaymentRefunds(err error) Problem {
	if errors.Is(err, backend.ErrNotFound) {
		return NewPaymentError(GetPaymentRefundsNotFound)
	}
	return NewPaymentError(GetPaymentRefundsConnectorError)
}

// SearchRefunds maps invalid parameters or a failed refund search.
func SearchRefunds(invalid []string, err error) Problem {
	if len(invalid) > 0 {
		return NewPaymentError(SearchRefundsValidation, validation.JoinNames(invalid))
	}
	if errors.Is(err, backend.ErrNotFound) {
		return NewPaymentError(SearchRefundsNotFound)
	}
	return NewPaymentError(SearchRefundsConnectorError)
}

// SearchDisputes maps invalid parameters or a failed dispute search.
func SearchDisputes(invalid []string, err error) Problem {
	if len(invalid) > 0 {
		return NewPaymentError(SearchDisputesValidation, validation.JoinNames(invalid))
	}
	if errors.Is(err, backend.ErrNotFound) {
		return NewPaymentError(SearchDisputesNotFound)
	}
	return NewPaymentError(SearchDisputesConnectorError)
}

// CreateRefund maps a failed refund creation.
func CreateRefund(err error) Problem {
	if ve, ok := asValidation(err); ok {
		return &RefundError{refundValidation.render(ve)}
	}

	switch backend.IdentifierOf(err) {
	case backend.IdentifierRefundAmountAvailableMismatch:
		return NewRefundError(CreateRefundAmountAvailableMismatch)
	case backend.IdentifierAccountDisabled:
		return NewRefundError(CreateRefundAccountDisabled)
	case backend.IdentifierRefundNotAvailable:
		return NewRefundError(CreateRefundNotAvailable, refundStatus(err))
	case backend.IdentifierInvalidAttributeValue:
		return NewRefundError(passthrough(Definition{http.StatusUnprocessableEntity, "P0602", "Invalid attribute value"}, err))
	}

	switch backend.StatusOf(err) {
	case http.StatusNotFound:
		return NewRefundError(CreateRefundPaymentNotFound)
	case http.StatusPreconditionFailed:
		return NewRefundError(CreateRefundNotAvailable, refundStatus(err))
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return NewRefundError(passthrough(Definition{http.StatusUnprocessableEntity, "P0602", "Invalid attribute value"}, err))
	}
	return NewRefundError(CreateRefundConnectorError)
}

// refundStatus is the payment refund status connector reports as reason.
func refundStatus(err error) string {
	var be *backend.Error
	if errors.As(err, &be) && be.Reason != "" {
		return strings.ToLower(be.Reason)
	}
	return "unavailable"
}

// GetRefund maps a failed refund lookup.
func GetRefund(err error) Problem {
	if errors.Is(err, backend.ErrNotFound) {
		return NewRefundError(GetRefundNotFound)
	}
	return NewRefundError(GetRefundConnectorError)
}

// CreateAgreement maps a failed agreement creation.
func CreateAgreement(err error) Problem {
	if ve, ok := asValidation(err); ok {
		return Validation(ve)
	}

	switch backend.IdentifierOf(err) {
	case backend.IdentifierAccountDisabled:
		return NewRequestError(AccountDisabled)
	case backend.IdentifierAccountNotLinkedWithPSP:
		return NewRequestError(AccountNotLinkedWithPSP)
	case backend.IdentifierRecurringCardPaymentsNotAllowed:
		return NewRequestError(RecurringCardPaymentsNotAllowed)
	}

	switch backend.StatusOf(err) {
	case http.StatusNotFound:
		return NewRequestError(CreateAgreementAccountError)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return NewRequestError(passthrough(Definition{http.StatusUnprocessableEntity, "P0102", "Invalid attribute value"}, err))
	}
	return NewRequestError(CreateAgreementConnectorError)
}

// GetAgreement maps a failed agreement lookup.
func GetAgreement(err error) Problem {
	if errors.Is(err, backend.ErrNotFound) {
		return NewRequestError(GetAgreementNotFound)
	}
	return NewRequestError(GetAgreementLedgerError)
}

// SearchAgreements maps invalid parameters or a failed agreement search.
func SearchAgreements(invalid []string, err error) Problem {
	if len(invalid) > 0 {
		return NewRequestError(SearchAgreementsValidation, validation.JoinNames(invalid))
	}
	if errors.Is(err, backend.ErrNotFound) {
		return NewRequestError(SearchAgreementsNotFound)
	}
	return NewRequestError(SearchAgreementsLedgerError)
}

// CancelAgreement maps a failed agreement cancellation.
func CancelAgreement(err error) Problem {
	if backend.IdentifierOf(err) == backend.IdentifierAgreementNotActive {
		return NewRequestError(CancelAgreementNotActive)
	}
	return NewRequestError(byStatus(err, map[int]Definition{
		http.StatusNotFound:   CancelAgreementNotFound,
		http.StatusBadRequest: CancelAgreementNotActive,
	}, CancelAgreementConnectorError))
}

// CreateMandate maps a failed mandate creation.
func CreateMandate(err error) Problem {
	if ve, ok := asValidation(err); ok {
		return &MandateError{mandateValidation.render(ve)}
	}
	switch backend.StatusOf(err) {
	case http.StatusNotFound:
		return NewMandateError(CreateMandateAccountError)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return NewMandateError(passthrough(Definition{http.StatusUnprocessableEntity, "P0102", "Invalid attribute value"}, err))
	}
	return NewMandateError(CreateMandateConnectorError)
}

// GetMandate maps a failed mandate lookup.
func GetMandate(err error) Problem {
	if errors.Is(err, backend.ErrNotFound) {
		return NewMandateError(GetMandateNotFound)
	}
	return NewMandateError(GetMandateConnectorError)
}

// SearchMandates maps invalid parameters or a failed mandate search.
func SearchMandates(invalid []string, err error) Problem {
	if len(invalid) > 0 {
		return NewMandateError(SearchMandatesValidation, validation.JoinNames(invalid))
	}
	if errors.Is(err, backend.ErrNotFound) {
		return NewMandateError(SearchMandatesNotFound)
	}
	return NewMandateError(SearchMandatesConnectorError)
}

// TelephonePayment maps a failed telephone payment notification.
func TelephonePayment(err error) Problem {
	if ve, ok := asValidation(err); ok {
		return PaymentValidation(ve)
	}
	switch backend.IdentifierOf(err) {
	case backend.IdentifierTelephoneNotificationsDisabled:
		return NewPaymentError(TelephoneNotificationsNotEnabled)
	case backend.IdentifierAccountDisabled:
		return NewPaymentError(AccountDisabled)
	}
	switch backend.StatusOf(err) {
	case http.StatusForbidden:
		return NewPaymentError(TelephoneNotificationsNotEnabled)
	case http.StatusNotFound:
		return NewPaymentError(CreatePaymentAccountError)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return NewPaymentError(passthrough(Definition{http.StatusUnprocessableEntity, "P0102", "Invalid attribute value"}, err))
	}
	return NewPaymentError(TelephonePaymentConnectorError)
}

// TokenType is served when the API key may not access the resource.
func TokenType() *RequestError {
	return NewRequestError(TokenTypeNotAllowed)
}
