// Package validation checks request bodies, headers, path ids and search
// parameters. Failures are reported as *Error, independent of the error scheme
// the caller eventually renders them in.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"publicapi/internal/model"
)

// Kind classifies a validation failure.
type Kind int

const (
	KindMissing Kind = iota + 1
	KindInvalid
	KindUnexpected
	KindUnparseable
	KindHeader
)

// Error is the first problem found in a request.
type Error struct {
	Kind   Kind
	Field  string
	Header string
	Detail string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMissing:
		return "missing mandatory attribute: " + e.Field
	case KindUnexpected:
		return "unexpected attribute: " + e.Field
	case KindUnparseable:
		return "unable to parse JSON"
	case KindHeader:
		return fmt.Sprintf("invalid header %s: %s", e.Header, e.Detail)
	default:
		return fmt.Sprintf("invalid attribute value %s: %s", e.Field, e.Detail)
	}
}

// Missing builds a missing-field error.
func Missing(field string) *Error {
	return &Error{Kind: KindMissing, Field: field}
}

// Unparseable builds an error for a body that is not a JSON object.
func Unparseable() *Error {
	return &Error{Kind: KindUnparseable}
}

// Invalid builds an invalid-value error.
func Invalid(field, detail string) *Error {
	return &Error{Kind: KindInvalid, Field: field, Detail: detail}
}

var (
	digitsRe     = regexp.MustCompile(`^[0-9]+$`)
	cardExpiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	isoInstantRe = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}(\.[0-9]{3})?Z$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("ndigits", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return digitsRe.MatchString(s) && strconv.Itoa(len(s)) == fl.Param()
	})
	_ = v.RegisterValidation("card_expiry", func(fl validator.FieldLevel) bool {
		return cardExpiryRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("iso_instant", func(fl validator.FieldLevel) bool {
		return IsInstant(fl.Field().String())
	})

	v.RegisterStructValidation(createPaymentRules, model.CreatePaymentRequest{})
	v.RegisterStructValidation(createMandateRules, model.CreateMandateRequest{})
	v.RegisterStructValidation(telephonePaymentRules, model.TelephonePaymentRequest{})

	return v
}

// ruleTag marks struct-level failures whose param is the detail to show.
const ruleTag = "rule"

// IsInstant reports whether s is a UTC timestamp with optional milliseconds,
// e.g. 2024-01-02T10:00:00.000Z.
func IsInstant(s string) bool {
	if !isoInstantRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(time.RFC3339Nano, s)
	return err == nil
}

// Struct validates s against its validate tags and returns the first failure
// in field declaration order.
func Struct(s any) *Error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return Invalid("", err.Error())
	}

	fe := firstDeclared(s, fieldErrs)
	field := fieldPath(fe)
	if fe.Tag() == "required" {
		return Missing(field)
	}
	return Invalid(field, describe(fe))
}

// firstDeclared picks the failure on the earliest top-level field of s.
// Failures on the same field keep the validator's order.
func firstDeclared(s any, errs validator.ValidationErrors) validator.FieldError {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return errs[0]
	}

	best, bestIndex := errs[0], t.NumField()+1
	for _, fe := range errs {
		if i := fieldIndex(t, fieldPath(fe)); i < bestIndex {
			best, bestIndex = fe, i
		}
	}
	return best
}

func fieldIndex(t reflect.Type, path string) int {
	name := strings.SplitN(path, ".", 2)[0]
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	for i := 0; i < t.NumField(); i++ {
		if strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0] == name {
			return i
		}
	}
	return t.NumField()
}

// fieldPath drops the root struct name from the namespace, giving e.g.
// prefilled_cardholder_details.billing_address.postcode.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "min", "gte":
		if isString {
			return "Must be greater than or equal to " + fe.Param() + " characters length"
		}
		return "Must be greater than or equal to " + fe.Param()
	case "max", "lte":
		if isString {
			return "Must be less than or equal to " + fe.Param() + " characters length"
		}
		return "Must be less than or equal to " + fe.Param()
	case "len":
		return "Must be " + fe.Param() + " characters length"
	case "oneof":
		return "Must be " + choice(strings.Fields(fe.Param()))
	case "url", "http_url":
		return "Must be a valid URL format"
	case ruleTag:
		return fe.Param()
	case "alpha":
		return "Must contain only letters"
	case "ndigits":
		return "Must be exactly " + fe.Param() + " digits"
	case "card_expiry":
		return "Must be a valid date with the format MM/YY"
	case "iso_instant":
		return "Must be a valid date with the format yyyy-MM-ddTHH:mm:ss.SSSZ"
	default:
		return "Must be a valid value"
	}
}

// choice renders ["en", "cy"] as `"en" or "cy"`.
func choice(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + v + `"`
	}
	if len(quoted) <= 1 {
		return strings.Join(quoted, "")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}

// DecodeBody parses a JSON object into dst. Top-level attributes not listed in
// allowed are rejected, as are values whose JSON type does not match dst.
func DecodeBody(body []byte, allowed []string, dst any) *Error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return &Error{Kind: KindUnparseable}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return &Error{Kind: KindUnparseable}
	}

	if allowed != nil {
		permitted := make(map[string]bool, len(allowed))
		for _, name := range allowed {
			permitted[name] = true
		}
		var unexpected []string
		for name := range raw {
			if !permitted[name] {
				unexpected = append(unexpected, name)
			}
		}
		if len(unexpected) > 0 {
			sort.Strings(unexpected)
			return &Error{Kind: KindUnexpected, Field: unexpected[0]}
		}
	}

	if err := json.Unmarshal(trimmed, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Invalid(typeErr.Field, typeDetail(typeErr.Type))
		}
		return &Error{Kind: KindUnparseable}
	}
	return nil
}

func typeDetail(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return "Must be a valid numeric format"
	case reflect.Bool:
		return "Must be true or false"
	case reflect.String:
		return "Must be a valid string format"
	case reflect.Map, reflect.Struct:
		return "Must be an object"
	default:
		return "Must be a valid value"
	}
}
