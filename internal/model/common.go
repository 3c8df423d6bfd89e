// Package model defines the external JSON contract of the Public API and the
// structures shared with the connector and ledger payloads.
package model

// Link is a HAL link.
type Link struct {
	Href   string            `json:"href"`
	Method string            `json:"method"`
	Type   string            `json:"type,omitempty"`
	Params map[string]string `json:"params,omitempty"`
}

// NewLink builds a link without body metadata.
func NewLink(href, method string) *Link {
	return &Link{Href: href, Method: method}
}

// PageLink is a pagination link. Search links carry no method.
type PageLink struct {
	Href string `json:"href"`
}

// SearchLinks are the pagination links of a search response.
type SearchLinks struct {
	Self      *PageLink `json:"self,omitempty"`
	FirstPage *PageLink `json:"first_page,omitempty"`
	LastPage  *PageLink `json:"last_page,omitempty"`
	PrevPage  *PageLink `json:"prev_page,omitempty"`
	NextPage  *PageLink `json:"next_page,omitempty"`
}

// SearchResults is the paginated envelope returned by every search.
type SearchResults[T any] struct {
	Total   int         `json:"total"`
	Count   int         `json:"count"`
	Page    int         `json:"page"`
	Results []T         `json:"results"`
	Links   SearchLinks `json:"_links"`
}

// Address is a cardholder billing address.
type Address struct {
	Line1    string `json:"line1,omitempty" validate:"max=255"`
	Line2    string `json:"line2,omitempty" validate:"max=255"`
	Postcode string `json:"postcode,omitempty" validate:"max=25"`
	City     string `json:"city,omitempty" validate:"max=255"`
	Country  string `json:"country,omitempty" validate:"omitempty,len=2,alpha"`
}

// CardDetails describes the card used for a payment.
type CardDetails struct {
	LastDigitsCardNumber  string   `json:"last_digits_card_number,omitempty"`
	FirstDigitsCardNumber string   `json:"first_digits_card_number,omitempty"`
	CardholderName        string   `json:"cardholder_name,omitempty"`
	ExpiryDate            string   `json:"expiry_date,omitempty"`
	BillingAddress        *Address `json:"billing_address,omitempty"`
	CardBrand             string   `json:"card_brand,omitempty"`
	CardType              string   `json:"card_type,omitempty"`
	WalletType            string   `json:"wallet_type,omitempty"`
}
