package validation

import (
	"strings"
	"testing"
)

func TestCreatePayment(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		kind   Kind
		field  string
		detail string
	}{
		{
			name: "valid",
			body: `{"amount":1000,"reference":"ref","description":"desc","return_url":"https://example.org/done"}`,
		},
		{
			name: "agreement mode without return url",
			body: `{"amount":1000,"reference":"ref","description":"desc","authorisation_mode":"agreement","agreement_id":"abcdefghijklmnopqrstuvwxyz"}`,
		},
		{
			name: "moto api without return url",
			body: `{"amount":1000,"reference":"ref","description":"desc","authorisation_mode":"moto_api"}`,
		},
		{
			name: "not an object",
			body: `[1,2]`,
			kind: KindUnparseable,
		},
		{
			name: "broken json",
			body: `{"amount":`,
			kind: KindUnparseable,
		},
		{
			name:  "missing amount",
			body:  `{"reference":"ref","description":"desc","return_url":"https://example.org"}`,
			kind:  KindMissing,
			field: "amount",
		},
		{
			name:   "amount too large",
			body:   `{"amount":10000001,"reference":"ref","description":"desc","return_url":"https://example.org"}`,
			kind:   KindInvalid,
			field:  "amount",
			detail: "Must be less than or equal to 10000000",
		},
		{
			name: "zero amount",
			body: `{"amount":0,"reference":"ref","description":"desc","return_url":"https://example.org"}`,
		},
		{
			name:   "negative amount",
			body:   `{"amount":-1,"reference":"ref","description":"desc","return_url":"https://example.org"}`,
			kind:   KindInvalid,
			field:  "amount",
			detail: "Must be greater than or equal to 1",
		},
		{
			name:   "amount is a string",
			body:   `{"amount":"1000","reference":"ref","description":"desc","return_url":"https://example.org"}`,
			kind:   KindInvalid,
			field:  "amount",
			detail: "Must be a valid numeric format",
		},
		{
			name:  "empty reference",
			body:  `{"amount":1,"reference":"","description":"desc","return_url":"https://example.org"}`,
			kind:  KindMissing,
			field: "reference",
		},
		{
			name:   "reference too long",
			body:   `{"amount":1,"reference":"` + strings.Repeat("r", 256) + `","description":"desc","return_url":"https://example.org"}`,
			kind:   KindInvalid,
			field:  "reference",
			detail: "Must be less than or equal to 255 characters length",
		},
		{
			name:  "missing return url",
			body:  `{"amount":1,"reference":"ref","description":"desc"}`,
			kind:  KindMissing,
			field: "return_url",
		},
		{
			name:  "missing return url reported before bad language",
			body:  `{"amount":1,"reference":"ref","description":"desc","language":"fr"}`,
			kind:  KindMissing,
			field: "return_url",
		},
		{
			name:   "bad metadata reported before bad authorisation mode",
			body:   `{"amount":1,"reference":"ref","description":"desc","return_url":"https://example.org","metadata":{"key":null},"authorisation_mode":"card"}`,
			kind:   KindInvalid,
			field:  "metadata",
			detail: "Values must be of type String, Boolean or Number",
		},
		{
			name:   "return url not http",
			body:   `{"amount":1,"reference":"ref","description":"desc","return_url":"ftp://example.org"}`,
			kind:   KindInvalid,
			field:  "return_url",
			detail: "Must be a valid URL format",
		},
		{
			name:   "unsupported language",
			body:   `{"amount":1,"reference":"ref","description":"desc","return_url":"https://example.org","language":"fr"}`,
			kind:   KindInvalid,
			field:  "language",
			detail: `Must be "en" or "cy"`,
		},
		{
			name:  "unexpected attribute",
			body:  `{"amount":1,"reference":"ref","description":"desc","return_url":"https://example.org","colour":"red"}`,
			kind:  KindUnexpected,
			field: "colour",
		},
		{
			name:   "postcode too long",
			body:   `{"amount":1,"reference":"ref","description":"desc","return_url":"https://example.org","prefilled_cardholder_details":{"billing_address":{"postcode":"` + strings.Repeat("p", 26) + `"}}}`,
			kind:   KindInvalid,
			field:  "prefilled_cardholder_details.billing_address.postcode",
			detail: "Must be less than or equal to 25 characters length",
		},
		{
			name:  "agreement mode without agreement id",
			body:  `{"amount":1,"reference":"ref","description":"desc","authorisation_mode":"agreement"}`,
			kind:  KindMissing,
			field: "agreement_id",
		},
		{
			name:  "agreement mode with return url",
			body:  `{"amount":1,"reference":"ref","description":"desc","authorisation_mode":"agreement","agreement_id":"abcdefghijklmnopqrstuvwxyz","return_url":"https://example.org"}`,
			kind:  KindInvalid,
			field: "return_url",
		},
		{
			name:  "set up agreement with agreement id",
			body:  `{"amount":1,"reference":"ref","description":"desc","return_url":"https://example.org","set_up_agreement":"abcdefghijklmnopqrstuvwxyz","agreement_id":"abcdefghijklmnopqrstuvwxyz"}`,
			kind:  KindInvalid,
			field: "set_up_agreement",
		},
		{
			name:   "metadata null value",
			body:   `{"amount":1,"reference":"ref","description":"desc","return_url":"https://example.org","metadata":{"key":null}}`,
			kind:   KindInvalid,
			field:  "metadata",
			detail: "Values must be of type String, Boolean or Number",
		},
		{
			name:   "metadata key too long",
			body:   `{"amount":1,"reference":"ref","description":"desc","return_url":"https://example.org","metadata":{"` + strings.Repeat("k", 31) + `":"v"}}`,
			kind:   KindInvalid,
			field:  "metadata",
			detail: "Keys must be between 1 and 30 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := CreatePayment([]byte(tt.body))
			if tt.kind == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if req == nil {
					t.Fatal("expected request")
				}
				return
			}
			if err == nil {
				t.Fatalf("expected %v error, got none", tt.kind)
			}
			if err.Kind != tt.kind {
				t.Errorf("kind = %v, want %v (%v)", err.Kind, tt.kind, err)
			}
			if tt.field != "" && err.Field != tt.field {
				t.Errorf("field = %q, want %q", err.Field, tt.field)
			}
			if tt.detail != "" && err.Detail != tt.detail {
				t.Errorf("detail = %q, want %q", err.Detail, tt.detail)
			}
		})
	}
}

func TestMetadataLimit(t *testing.T) {
	metadata := make(map[string]any)
	for i := 0; i < 11; i++ {
		metadata[strings.Repeat("k", i+1)] = true
	}
	err := Metadata(metadata)
	if err == nil || err.Detail != "Cannot have more than 10 key-value pairs" {
		t.Fatalf("Metadata() = %v, want pair limit error", err)
	}
	if err := Metadata(map[string]any{"a": "x", "b": 1.5, "c": false}); err != nil {
		t.Fatalf("Metadata() = %v, want nil", err)
	}
}

func TestIdempotencyKey(t *testing.T) {
	if err := IdempotencyKey("", false); err != nil {
		t.Errorf("absent header: %v", err)
	}
	if err := IdempotencyKey("order-123", true); err != nil {
		t.Errorf("valid key: %v", err)
	}
	for _, key := range []string{"", strings.Repeat("k", 256), "has space", "café"} {
		err := IdempotencyKey(key, true)
		if err == nil {
			t.Errorf("key %q accepted", key)
			continue
		}
		if err.Kind != KindHeader || err.Header != IdempotencyKeyHeader {
			t.Errorf("key %q: got %+v", key, err)
		}
	}
}

func TestCreateRefund(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		kind  Kind
		field string
	}{
		{name: "valid", body: `{"amount":100}`},
		{name: "with amount available", body: `{"amount":100,"refund_amount_available":500}`},
		{name: "missing amount", body: `{}`, kind: KindMissing, field: "amount"},
		{name: "zero amount", body: `{"amount":0}`, kind: KindInvalid, field: "amount"},
		{name: "negative available", body: `{"amount":1,"refund_amount_available":-1}`, kind: KindInvalid, field: "refund_amount_available"},
		{name: "unexpected", body: `{"amount":1,"reason":"x"}`, kind: KindUnexpected, field: "reason"},
		{name: "unparseable", body: `amount=1`, kind: KindUnparseable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateRefund([]byte(tt.body))
			if tt.kind == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Kind != tt.kind || err.Field != tt.field {
				t.Fatalf("CreateRefund() = %+v, want kind %v field %q", err, tt.kind, tt.field)
			}
		})
	}
}

func TestTelephonePayment(t *testing.T) {
	const base = `"amount":1200,"reference":"ref","description":"desc","processor_id":"proc","provider_id":"prov"`

	tests := []struct {
		name  string
		body  string
		kind  Kind
		field string
	}{
		{
			name: "success",
			body: `{` + base + `,"payment_outcome":{"status":"success"},"card_expiry":"02/29","last_four_digits":"1234","first_six_digits":"424242","created_date":"2024-01-02T10:00:00.000Z"}`,
		},
		{
			name: "failed with code",
			body: `{` + base + `,"payment_outcome":{"status":"failed","code":"P0010","supplemental":{"error_code":"ECKOH01234"}}}`,
		},
		{
			name:  "missing outcome",
			body:  `{` + base + `}`,
			kind:  KindMissing,
			field: "payment_outcome",
		},
		{
			name:  "failed without code",
			body:  `{` + base + `,"payment_outcome":{"status":"failed"}}`,
			kind:  KindMissing,
			field: "payment_outcome.code",
		},
		{
			name:  "missing failure code reported before bad card type",
			body:  `{` + base + `,"payment_outcome":{"status":"failed"},"card_type":"unknown-card"}`,
			kind:  KindMissing,
			field: "payment_outcome.code",
		},
		{
			name:  "success with code",
			body:  `{` + base + `,"payment_outcome":{"status":"success","code":"P0010"}}`,
			kind:  KindInvalid,
			field: "payment_outcome",
		},
		{
			name:  "bad outcome status",
			body:  `{` + base + `,"payment_outcome":{"status":"maybe"}}`,
			kind:  KindInvalid,
			field: "payment_outcome.status",
		},
		{
			name:  "bad card expiry",
			body:  `{` + base + `,"payment_outcome":{"status":"success"},"card_expiry":"13/29"}`,
			kind:  KindInvalid,
			field: "card_expiry",
		},
		{
			name:  "short last four digits",
			body:  `{` + base + `,"payment_outcome":{"status":"success"},"last_four_digits":"123"}`,
			kind:  KindInvalid,
			field: "last_four_digits",
		},
		{
			name:  "created date without zone",
			body:  `{` + base + `,"payment_outcome":{"status":"success"},"created_date":"2024-01-02T10:00:00"}`,
			kind:  KindInvalid,
			field: "created_date",
		},
		{
			name:  "unknown card type",
			body:  `{` + base + `,"payment_outcome":{"status":"success"},"card_type":"bankcard"}`,
			kind:  KindInvalid,
			field: "card_type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TelephonePayment([]byte(tt.body))
			if tt.kind == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Kind != tt.kind || err.Field != tt.field {
				t.Fatalf("TelephonePayment() = %+v, want kind %v field %q", err, tt.kind, tt.field)
			}
		})
	}
}

func TestCreateMandate(t *testing.T) {
	if _, err := CreateMandate([]byte(`{"return_url":"https://example.org/back","reference":"ref"}`)); err != nil {
		t.Fatalf("valid mandate: %v", err)
	}
	_, err := CreateMandate([]byte(`{"reference":"ref"}`))
	if err == nil || err.Kind != KindMissing || err.Field != "return_url" {
		t.Fatalf("missing return_url: got %+v", err)
	}
}

func TestCreateAgreement(t *testing.T) {
	if _, err := CreateAgreement([]byte(`{"reference":"ref","description":"desc","user_identifier":"user"}`)); err != nil {
		t.Fatalf("valid agreement: %v", err)
	}
	_, err := CreateAgreement([]byte(`{"reference":"ref"}`))
	if err == nil || err.Kind != KindMissing || err.Field != "description" {
		t.Fatalf("missing description: got %+v", err)
	}
}

func TestResourceID(t *testing.T) {
	for id, want := range map[string]bool{
		"abc123":                      true,
		"abcdefghijklmnopqrstuvwxyz":  true,
		"abcdefghijklmnopqrstuvwxyz1": false,
		"":                            false,
		"abc-123":                     false,
	} {
		if got := ResourceID(id); got != want {
			t.Errorf("ResourceID(%q) = %v, want %v", id, got, want)
		}
	}
}
