package apierror

import "net/http"

// Mandate error definitions.
var (
	CreateMandateConnectorError = Definition{http.StatusInternalServerError, "P0198", "Downstream system error"}
	CreateMandateAccountError   = Definition{http.StatusBadRequest, "P0199",
		"There is an error with this account. Please contact support"}

	GetMandateNotFound       = Definition{http.StatusNotFound, "P0200", "Not found"}
	GetMandateConnectorError = Definition{http.StatusInternalServerError, "P0298", "Downstream system error"}

	SearchMandatesValidation = Definition{http.StatusUnprocessableEntity, "P0401",
		"Invalid parameters: %s. See Public API documentation for the correct data formats"}
	SearchMandatesNotFound       = Definition{http.StatusNotFound, "P0402", "Page not found"}
	SearchMandatesConnectorError = Definition{http.StatusInternalServerError, "P0498", "Downstream system error"}
)

var mandateValidation = validationSet{
	missing:     missingField,
	invalid:     invalidField,
	unexpected:  unexpected,
	unparseable: unparseable,
	header:      headerField,
}
