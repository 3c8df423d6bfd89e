package validation

import (
	"fmt"
	"math"
	"net/url"
	"regexp"

	"github.com/go-playground/validator/v10"

	"publicapi/internal/model"
)

const (
	maxMetadataPairs       = 10
	maxMetadataKeyLength   = 30
	maxMetadataValueLength = 100
	maxIdempotencyKeyLen   = 255
)

// IdempotencyKeyHeader is the header merchants use to make payment creation idempotent.
const IdempotencyKeyHeader = "Idempotency-Key"

var createPaymentFields = []string{
	"amount", "reference", "description", "return_url", "language", "email",
	"prefilled_cardholder_details", "delayed_capture", "moto", "metadata",
	"set_up_agreement", "agreement_id", "authorisation_mode",
}

var idempotencyKeyRe = regexp.MustCompile(`^[\x21-\x7E]+$`)

// CreatePayment decodes and validates the body of a create payment request.
func CreatePayment(body []byte) (*model.CreatePaymentRequest, *Error) {
	var req model.CreatePaymentRequest
	if err := DecodeBody(body, createPaymentFields, &req); err != nil {
		return nil, err
	}
	if err := Struct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// createPaymentRules carries the checks that span fields or need more than a
// tag. Each failure is reported against the field it concerns so Struct can
// order it among the tag failures.
func createPaymentRules(sl validator.StructLevel) {
	req := sl.Current().Interface().(model.CreatePaymentRequest)
	mode := req.AuthorisationMode

	if req.Amount != nil && *req.Amount < 0 {
		sl.ReportError(req.Amount, "amount", "Amount", "min", "1")
	}
	switch {
	case req.ReturnURL == "" && mode != model.AuthorisationModeAgreement && mode != model.AuthorisationModeMotoAPI:
		sl.ReportError(req.ReturnURL, "return_url", "ReturnURL", "required", "")
	case req.ReturnURL != "" && mode == model.AuthorisationModeAgreement:
		sl.ReportError(req.ReturnURL, "return_url", "ReturnURL", ruleTag, "Must not be provided when authorisation_mode is agreement")
	case req.ReturnURL != "" && !isHTTPURL(req.ReturnURL):
		sl.ReportError(req.ReturnURL, "return_url", "ReturnURL", ruleTag, "Must be a valid URL format")
	}
	if err := Metadata(req.Metadata); err != nil {
		sl.ReportError(req.Metadata, "metadata", "Metadata", ruleTag, err.Detail)
	}
	if req.SetUpAgreement != "" && req.AgreementID != "" {
		sl.ReportError(req.SetUpAgreement, "set_up_agreement", "SetUpAgreement", ruleTag, "Must not be provided with agreement_id")
	}
	if mode == model.AuthorisationModeAgreement && req.AgreementID == "" {
		sl.ReportError(req.AgreementID, "agreement_id", "AgreementID", "required", "")
	}
}

// Metadata checks the merchant-supplied metadata map. Values must be strings,
// numbers or booleans.
func Metadata(metadata map[string]any) *Error {
	if metadata == nil {
		return nil
	}
	if len(metadata) > maxMetadataPairs {
		return Invalid("metadata", fmt.Sprintf("Cannot have more than %d key-value pairs", maxMetadataPairs))
	}
	for key, value := range metadata {
		if len(key) == 0 || len(key) > maxMetadataKeyLength {
			return Invalid("metadata", fmt.Sprintf("Keys must be between 1 and %d characters long", maxMetadataKeyLength))
		}
		switch v := value.(type) {
		case string:
			if len(v) > maxMetadataValueLength {
				return Invalid("metadata", fmt.Sprintf("Values must be no greater than %d characters long", maxMetadataValueLength))
			}
		case float64:
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Invalid("metadata", "Values must be of type String, Boolean or Number")
			}
		case bool:
		default:
			return Invalid("metadata", "Values must be of type String, Boolean or Number")
		}
	}
	return nil
}

// IdempotencyKey validates the optional Idempotency-Key header value.
func IdempotencyKey(key string, present bool) *Error {
	if !present {
		return nil
	}
	if len(key) == 0 || len(key) > maxIdempotencyKeyLen {
		return &Error{Kind: KindHeader, Header: IdempotencyKeyHeader,
			Detail: fmt.Sprintf("Must be between 1 and %d characters long", maxIdempotencyKeyLen)}
	}
	if !idempotencyKeyRe.MatchString(key) {
		return &Error{Kind: KindHeader, Header: IdempotencyKeyHeader,
			Detail: "Must contain only printable ASCII characters"}
	}
	return nil
}

// CreateRefund decodes and validates the body of a create refund request.
func CreateRefund(body []byte) (*model.CreateRefundRequest, *Error) {
	var req model.CreateRefundRequest
	if err := DecodeBody(body, []string{"amount", "refund_amount_available"}, &req); err != nil {
		return nil, err
	}
	if err := Struct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
