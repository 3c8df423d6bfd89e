package validation

import (
	"net/url"
	"reflect"
	"testing"
)

func TestSearch(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		allowed SearchSpec
		want    []string
	}{
		{
			name:    "valid payment search",
			query:   "reference=abc&state=success&page=2&display_size=100&from_date=2024-01-01T00:00:00Z&from_settled_date=2024-01-01&card_brand=master-card",
			allowed: PaymentSearch,
		},
		{
			name:    "empty values are ignored",
			query:   "reference=&page=",
			allowed: PaymentSearch,
		},
		{
			name:    "invalid values in declaration order",
			query:   "page=0&state=unknown&first_digits_card_number=12",
			allowed: PaymentSearch,
			want:    []string{"state", "page", "first_digits_card_number"},
		},
		{
			name:    "unsupported after supported",
			query:   "zeta=1&alpha=2&display_size=501",
			allowed: PaymentSearch,
			want:    []string{"display_size", "alpha", "zeta"},
		},
		{
			name:    "repeated parameter",
			query:   "page=1&page=2",
			allowed: RefundSearch,
			want:    []string{"page"},
		},
		{
			name:    "settled date needs date only",
			query:   "from_settled_date=2024-01-01T00:00:00Z",
			allowed: RefundSearch,
			want:    []string{"from_settled_date"},
		},
		{
			name:    "dispute status",
			query:   "status=lost",
			allowed: DisputeSearch,
		},
		{
			name:    "agreement status",
			query:   "status=pending",
			allowed: AgreementSearch,
			want:    []string{"status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			got := Search(query, tt.allowed)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJoinNames(t *testing.T) {
	if got := JoinNames([]string{"state", "page"}); got != "state, page" {
		t.Errorf("JoinNames() = %q", got)
	}
}
