// Package apierror defines the versioned error bodies of the Public API and
// maps validation and backend failures onto them.
package apierror

import (
	"fmt"
	"net/http"

	"publicapi/internal/validation"
)

// Problem is an error body bound to the HTTP status it is served with.
type Problem interface {
	error
	StatusCode() int
}

// Definition fixes the status, code and description template of one error.
type Definition struct {
	Status int
	Code   string
	Format string
}

type errorBody struct {
	status      int
	Field       string `json:"field,omitempty"`
	Header      string `json:"header,omitempty"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

func newBody(d Definition, field, header string, args ...any) errorBody {
	desc := d.Format
	if len(args) > 0 {
		desc = fmt.Sprintf(d.Format, args...)
	}
	return errorBody{status: d.Status, Field: field, Header: header, Code: d.Code, Description: desc}
}

func (e errorBody) Error() string {
	return e.Code + ": " + e.Description
}

// StatusCode returns the HTTP status of the error.
func (e errorBody) StatusCode() int {
	return e.status
}

// PaymentError is the error scheme of payment, search and capture/cancel
// operations.
type PaymentError struct{ errorBody }

// RefundError is the error scheme of refund operations.
type RefundError struct{ errorBody }

// RequestError is the generic request error scheme used by agreements and
// request-level failures.
type RequestError struct{ errorBody }

// MandateError is the error scheme of direct debit mandate operations.
type MandateError struct{ errorBody }

// NewPaymentError renders d with args.
func NewPaymentError(d Definition, args ...any) *PaymentError {
	return &PaymentError{newBody(d, "", "", args...)}
}

// NewRefundError renders d with args.
func NewRefundError(d Definition, args ...any) *RefundError {
	return &RefundError{newBody(d, "", "", args...)}
}

// NewRequestError renders d with args.
func NewRequestError(d Definition, args ...any) *RequestError {
	return &RequestError{newBody(d, "", "", args...)}
}

// NewMandateError renders d with args.
func NewMandateError(d Definition, args ...any) *MandateError {
	return &MandateError{newBody(d, "", "", args...)}
}

// validationSet picks the definitions a scheme uses for each validation kind.
type validationSet struct {
	missing     Definition
	invalid     Definition
	unexpected  Definition
	unparseable Definition
	header      Definition
}

func (s validationSet) render(err *validation.Error) errorBody {
	switch err.Kind {
	case validation.KindMissing:
		return newBody(s.missing, err.Field, "", err.Field)
	case validation.KindUnexpected:
		return newBody(s.unexpected, err.Field, "", err.Field)
	case validation.KindUnparseable:
		return newBody(s.unparseable, "", "")
	case validation.KindHeader:
		return newBody(s.header, "", err.Header, err.Header, err.Detail)
	default:
		return newBody(s.invalid, err.Field, "", err.Field, err.Detail)
	}
}

var (
	missingField = Definition{http.StatusBadRequest, "P0101", "Missing mandatory attribute: %s"}
	invalidField = Definition{http.StatusUnprocessableEntity, "P0102", "Invalid attribute value: %s. %s"}
	unexpected   = Definition{http.StatusUnprocessableEntity, "P0104", "Unexpected attribute: %s"}
	unparseable  = Definition{http.StatusBadRequest, "P0197", "Unable to parse JSON"}
	headerField  = Definition{http.StatusUnprocessableEntity, "P0102", "Invalid header value: %s. %s"}
)

var requestValidation = validationSet{
	missing:     missingField,
	invalid:     invalidField,
	unexpected:  unexpected,
	unparseable: unparseable,
	header:      headerField,
}
