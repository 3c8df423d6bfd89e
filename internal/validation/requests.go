package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"publicapi/internal/model"
)

// CreateAgreement decodes and validates the body of a create agreement request.
func CreateAgreement(body []byte) (*model.CreateAgreementRequest, *Error) {
	var req model.CreateAgreementRequest
	if err := DecodeBody(body, []string{"reference", "description", "user_identifier"}, &req); err != nil {
		return nil, err
	}
	if err := Struct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// CreateMandate decodes and validates the body of a create mandate request.
func CreateMandate(body []byte) (*model.CreateMandateRequest, *Error) {
	var req model.CreateMandateRequest
	if err := DecodeBody(body, []string{"return_url", "reference", "description"}, &req); err != nil {
		return nil, err
	}
	if err := Struct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func createMandateRules(sl validator.StructLevel) {
	req := sl.Current().Interface().(model.CreateMandateRequest)
	if req.ReturnURL != "" && !isHTTPURL(req.ReturnURL) {
		sl.ReportError(req.ReturnURL, "return_url", "ReturnURL", ruleTag, "Must be a valid URL format")
	}
}

var telephonePaymentFields = []string{
	"amount", "reference", "description", "created_date", "authorised_date",
	"processor_id", "provider_id", "auth_code", "payment_outcome", "card_type",
	"name_on_card", "email_address", "card_expiry", "last_four_digits",
	"first_six_digits", "telephone_number",
}

// TelephonePayment decodes and validates a telephone payment notification.
// A failed outcome must carry one of the failure codes.
func TelephonePayment(body []byte) (*model.TelephonePaymentRequest, *Error) {
	var req model.TelephonePaymentRequest
	if err := DecodeBody(body, telephonePaymentFields, &req); err != nil {
		return nil, err
	}
	if err := Struct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func telephonePaymentRules(sl validator.StructLevel) {
	req := sl.Current().Interface().(model.TelephonePaymentRequest)
	outcome := req.PaymentOutcome
	if outcome == nil {
		return
	}
	switch {
	case outcome.Status == model.OutcomeFailed && outcome.Code == "":
		sl.ReportError(outcome.Code, "payment_outcome.code", "Code", "required", "")
	case outcome.Status == model.OutcomeSuccess && (outcome.Code != "" || outcome.Supplemental != nil):
		sl.ReportError(outcome, "payment_outcome", "PaymentOutcome", ruleTag, "Must not include code or supplemental when status is success")
	}
}

var resourceIDRe = regexp.MustCompile(`^[A-Za-z0-9]{1,26}$`)

// ResourceID reports whether id looks like a payment, refund, agreement,
// mandate or dispute id. Anything else cannot exist on the backends.
func ResourceID(id string) bool {
	return resourceIDRe.MatchString(id)
}
