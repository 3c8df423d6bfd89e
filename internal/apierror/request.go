package apierror

import "net/http"

// Request error definitions.
var (
	TokenTypeNotAllowed = Definition{http.StatusForbidden, "P0920",
		"The API key used is not permitted to access this resource"}

	CreateAgreementConnectorError = Definition{http.StatusInternalServerError, "P2198", "Downstream system error"}
	CreateAgreementAccountError   = Definition{http.StatusBadRequest, "P2199",
		"There is an error with this account. Please contact support"}

	GetAgreementNotFound    = Definition{http.StatusNotFound, "P2200", "Not found"}
	GetAgreementLedgerError = Definition{http.StatusInternalServerError, "P2298", "Downstream system error"}

	SearchAgreementsValidation = Definition{http.StatusUnprocessableEntity, "P2401",
		"Invalid parameters: %s. See Public API documentation for the correct data formats"}
	SearchAgreementsNotFound    = Definition{http.StatusNotFound, "P2402", "Page not found"}
	SearchAgreementsLedgerError = Definition{http.StatusInternalServerError, "P2498", "Downstream system error"}

	CancelAgreementNotFound  = Definition{http.StatusNotFound, "P2500", "Not found"}
	CancelAgreementNotActive = Definition{http.StatusBadRequest, "P2501",
		"Cancellation of agreement failed"}
	CancelAgreementConnectorError = Definition{http.StatusInternalServerError, "P2598", "Downstream system error"}
)

// IdempotencyKeyReused is served when a replayed key arrives with a different body.
var IdempotencyKeyReused = Definition{http.StatusConflict, "P0191",
	"The Idempotency-Key has already been used with a different request"}
