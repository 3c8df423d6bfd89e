package apierror

import "net/http"

// Payment error definitions.
var (
	CreatePaymentAccountError = Definition{http.StatusBadRequest, "P0199",
		"There is an error with this account. Please contact support"}
	CreatePaymentConnectorError     = Definition{http.StatusInternalServerError, "P0198", "Downstream system error"}
	CreatePaymentIdempotencyKeyUsed = Definition{http.StatusConflict, "P0191",
		"The Idempotency-Key has already been used to create a payment"}
	CreatePaymentZeroAmountNotAllowed = Definition{http.StatusUnprocessableEntity, "P0102",
		"Invalid attribute value: amount. Must be greater than or equal to 1"}
	CreatePaymentMotoNotEnabled = Definition{http.StatusUnprocessableEntity, "P0196",
		"MOTO payments are not enabled for this account. Please contact support if you would like to process MOTO payments - https://www.payments.service.gov.uk/support/ ."}
	CreatePaymentAuthorisationAPINotEnabled = Definition{http.StatusUnprocessableEntity, "P0195",
		"Using authorisation_mode of moto_api is not allowed for this account"}
	CreatePaymentAgreementNotFound = Definition{http.StatusBadRequest, "P0103",
		"Invalid attribute value: agreement_id. Agreement ID does not exist"}
	CreatePaymentAgreementNotActive = Definition{http.StatusBadRequest, "P0103",
		"Invalid attribute value: agreement_id. Agreement must be active"}
	CreatePaymentCardNumberInReference = Definition{http.StatusBadRequest, "P0105",
		"Card number entered in a payment link reference"}
	AccountNotLinkedWithPSP = Definition{http.StatusForbidden, "P0930",
		"This account is not connected to a payment service provider. Use a different account or connect this account to a payment service provider."}
	AccountDisabled = Definition{http.StatusForbidden, "P0941",
		"GOV.UK Pay has disabled payment and refund creation on this account. Please contact support."}
	RecurringCardPaymentsNotAllowed = Definition{http.StatusUnprocessableEntity, "P0942",
		"Recurring card payments are currently disabled for this service. Contact support with your service ID."}

	GetPaymentNotFound       = Definition{http.StatusNotFound, "P0200", "Not found"}
	GetPaymentConnectorError = Definition{http.StatusInternalServerError, "P0298", "Downstream system error"}

	GetPaymentEventsNotFound       = Definition{http.StatusNotFound, "P0300", "Not found"}
	GetPaymentEventsConnectorError = Definition{http.StatusInternalServerError, "P0398", "Downstream system error"}

	SearchPaymentsValidation = Definition{http.StatusUnprocessableEntity, "P0401",
		"Invalid parameters: %s. See Public API documentation for the correct data formats"}
	SearchPaymentsNotFound       = Definition{http.StatusNotFound, "P0402", "Page not found"}
	SearchPaymentsConnectorError = Definition{http.StatusInternalServerError, "P0498", "Downstream system error"}

	CancelPaymentNotFound       = Definition{http.StatusNotFound, "P0500", "Not found"}
	CancelPaymentBadRequest     = Definition{http.StatusBadRequest, "P0501", "Cancellation of payment failed"}
	CancelPaymentConflict       = Definition{http.StatusConflict, "P0502", "Cancellation of payment failed"}
	CancelPaymentConnectorError = Definition{http.StatusInternalServerError, "P0598", "Downstream system error"}

	GetPaymentRefundsNotFound       = Definition{http.StatusNotFound, "P0800", "Not found"}
	GetPaymentRefundsConnectorError = Definition{http.StatusInternalServerError, "P0898", "Downstream system error"}

	TooManyRequests = Definition{http.StatusTooManyRequests, "P0900", "Too many requests"}

	CapturePaymentNotFound       = Definition{http.StatusNotFound, "P1000", "Not found"}
	CapturePaymentBadRequest     = Definition{http.StatusBadRequest, "P1001", "Capture of payment failed"}
	CapturePaymentConflict       = Definition{http.StatusConflict, "P1003", "Payment cannot be captured"}
	CapturePaymentConnectorError = Definition{http.StatusInternalServerError, "P1098", "Downstream system error"}

	SearchRefundsNotFound   = Definition{http.StatusNotFound, "P1100", "Page not found"}
	SearchRefundsValidation = Definition{http.StatusUnprocessableEntity, "P1101",
		"Invalid parameters: %s. See Public API documentation for the correct data formats"}
	SearchRefundsConnectorError = Definition{http.StatusInternalServerError, "P1898", "Downstream system error"}

	SearchDisputesValidation = Definition{http.StatusUnprocessableEntity, "P0401",
		"Invalid parameters: %s. See Public API documentation for the correct data formats"}
	SearchDisputesNotFound       = Definition{http.StatusNotFound, "P0402", "Page not found"}
	SearchDisputesConnectorError = Definition{http.StatusInternalServerError, "P0498", "Downstream system error"}

	TelephoneNotificationsNotEnabled = Definition{http.StatusForbidden, "P0941",
		"Telephone payment notifications are not enabled for this account. Please contact support."}
	TelephonePaymentConnectorError = Definition{http.StatusInternalServerError, "P0198", "Downstream system error"}
)

// RateLimited is served when an account exceeds its request allowance.
func RateLimited() *PaymentError {
	return NewPaymentError(TooManyRequests)
}
