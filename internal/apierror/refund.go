package apierror

import "net/http"

// Refund error definitions.
var (
	CreateRefundPaymentNotFound = Definition{http.StatusNotFound, "P0600", "Not found"}
	CreateRefundMissingField    = Definition{http.StatusBadRequest, "P0601", "Missing mandatory attribute: %s"}
	CreateRefundValidation      = Definition{http.StatusUnprocessableEntity, "P0602", "Invalid attribute value: %s. %s"}
	CreateRefundNotAvailable    = Definition{http.StatusPreconditionFailed, "P0603",
		"The payment is not available for refund. Payment refund status: %s"}
	CreateRefundAmountAvailableMismatch = Definition{http.StatusPreconditionFailed, "P0604",
		"Refund amount available mismatch."}
	CreateRefundUnparseable     = Definition{http.StatusBadRequest, "P0697", "Unable to parse JSON"}
	CreateRefundConnectorError  = Definition{http.StatusInternalServerError, "P0698", "Downstream system error"}
	CreateRefundAccountDisabled = Definition{http.StatusForbidden, "P0941",
		"GOV.UK Pay has disabled payment and refund creation on this account. Please contact support."}

	GetRefundNotFound       = Definition{http.StatusNotFound, "P0700", "Not found"}
	GetRefundConnectorError = Definition{http.StatusInternalServerError, "P0798", "Downstream system error"}
)

var refundValidation = validationSet{
	missing:     CreateRefundMissingField,
	invalid:     CreateRefundValidation,
	unexpected:  Definition{http.StatusUnprocessableEntity, "P0602", "Unexpected attribute: %s"},
	unparseable: CreateRefundUnparseable,
	header:      Definition{http.StatusUnprocessableEntity, "P0602", "Invalid header value: %s. %s"},
}
