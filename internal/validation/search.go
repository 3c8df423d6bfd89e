package validation

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Rule validates a single search parameter value.
type Rule func(value string) bool

// Param is a supported search parameter.
type Param struct {
	Name  string
	Valid Rule
}

// SearchSpec is the ordered allow-list of parameters a search accepts.
type SearchSpec []Param

// Names returns the parameter names in declaration order.
func (s SearchSpec) Names() []string {
	names := make([]string, len(s))
	for i, p := range s {
		names[i] = p.Name
	}
	return names
}

// Search returns the names of every invalid parameter in query: unsupported
// names, repeated parameters and values failing their rule. Supported names
// come first in allow-list order, unsupported ones after, sorted.
func Search(query url.Values, allowed SearchSpec) []string {
	var invalid []string
	known := make(map[string]bool, len(allowed))

	for _, p := range allowed {
		known[p.Name] = true
		values, ok := query[p.Name]
		if !ok {
			continue
		}
		if len(values) > 1 {
			invalid = append(invalid, p.Name)
			continue
		}
		if values[0] == "" {
			continue
		}
		if !p.Valid(values[0]) {
			invalid = append(invalid, p.Name)
		}
	}

	var unsupported []string
	for name := range query {
		if !known[name] {
			unsupported = append(unsupported, name)
		}
	}
	sort.Strings(unsupported)

	return append(invalid, unsupported...)
}

// MaxLength accepts strings up to n characters.
func MaxLength(n int) Rule {
	return func(v string) bool { return len(v) <= n }
}

// OneOf accepts exactly one of the listed values.
func OneOf(values ...string) Rule {
	return func(v string) bool {
		for _, allowed := range values {
			if v == allowed {
				return true
			}
		}
		return false
	}
}

// IntBetween accepts base-10 integers in [lo, hi].
func IntBetween(lo, hi int) Rule {
	return func(v string) bool {
		n, err := strconv.Atoi(v)
		return err == nil && n >= lo && n <= hi
	}
}

// Digits accepts exactly n decimal digits.
func Digits(n int) Rule {
	re := regexp.MustCompile(`^[0-9]{` + strconv.Itoa(n) + `}$`)
	return re.MatchString
}

// DateTime accepts ISO-8601 timestamps with a zone offset.
func DateTime(v string) bool {
	_, err := time.Parse(time.RFC3339, v)
	return err == nil
}

// Date accepts yyyy-mm-dd dates.
func Date(v string) bool {
	_, err := time.Parse(time.DateOnly, v)
	return err == nil
}

var cardBrandRe = regexp.MustCompile(`^[a-z]+(-[a-z]+)*$`)

// CardBrand accepts lower-case hyphenated brand names such as master-card.
func CardBrand(v string) bool {
	return cardBrandRe.MatchString(v)
}

// ID accepts resource ids.
func ID(v string) bool {
	return ResourceID(v)
}

const maxDisplaySize = 500

var (
	pageParam        = Param{"page", IntBetween(1, 1<<31-1)}
	displaySizeParam = Param{"display_size", IntBetween(1, maxDisplaySize)}
)

// PaymentSearch is the allow-list for GET /v1/payments.
var PaymentSearch = SearchSpec{
	{"reference", MaxLength(255)},
	{"email", MaxLength(254)},
	{"state", OneOf("created", "started", "submitted", "capturable", "success", "failed", "cancelled", "error")},
	{"card_brand", CardBrand},
	{"from_date", DateTime},
	{"to_date", DateTime},
	pageParam,
	displaySizeParam,
	{"first_digits_card_number", Digits(6)},
	{"last_digits_card_number", Digits(4)},
	{"cardholder_name", MaxLength(255)},
	{"agreement_id", ID},
	{"from_settled_date", Date},
	{"to_settled_date", Date},
}

// RefundSearch is the allow-list for GET /v1/refunds.
var RefundSearch = SearchSpec{
	{"from_date", DateTime},
	{"to_date", DateTime},
	{"from_settled_date", Date},
	{"to_settled_date", Date},
	pageParam,
	displaySizeParam,
}

// DisputeSearch is the allow-list for GET /v1/disputes.
var DisputeSearch = SearchSpec{
	{"from_date", DateTime},
	{"to_date", DateTime},
	{"from_settled_date", Date},
	{"to_settled_date", Date},
	{"status", OneOf("needs_response", "won", "lost", "under_review")},
	pageParam,
	displaySizeParam,
}

// AgreementSearch is the allow-list for GET /v1/agreements.
var AgreementSearch = SearchSpec{
	{"reference", MaxLength(255)},
	{"status", OneOf("created", "active", "cancelled", "expired", "inactive")},
	pageParam,
	displaySizeParam,
}

// MandateSearch is the allow-list for GET /v1/directdebit/mandates.
var MandateSearch = SearchSpec{
	{"reference", MaxLength(255)},
	{"state", OneOf("created", "started", "pending", "submitted", "active", "inactive", "cancelled", "failed", "abandoned", "error")},
	{"bank_statement_reference", MaxLength(255)},
	{"email", MaxLength(254)},
	{"from_date", DateTime},
	{"to_date", DateTime},
	pageParam,
	displaySizeParam,
}

// JoinNames renders invalid parameter names for error descriptions.
func JoinNames(names []string) string {
	return strings.Join(names, ", ")
}
