// Package hal builds the public _links of API responses and rewrites backend
// pagination links onto the public base URL.
package hal

import (
	"net/url"
	"strings"

	"publicapi/internal/model"
)

// Public paths.
const (
	PaymentsPath   = "/v1/payments"
	RefundsPath    = "/v1/refunds"
	DisputesPath   = "/v1/disputes"
	AgreementsPath = "/v1/agreements"
	MandatesPath   = "/v1/directdebit/mandates"
)

// backendOnlyParams never appear in public links.
var backendOnlyParams = []string{
	"account_id",
	"gateway_account_id",
	"transaction_type",
	"status_version",
	"exact_reference_match",
	"with_parent_transaction",
}

// Builder builds links rooted at the public base URL.
type Builder struct {
	base string
}

// NewBuilder creates a builder for baseURL.
func NewBuilder(baseURL string) *Builder {
	return &Builder{base: strings.TrimRight(baseURL, "/")}
}

// URL joins path onto the base URL.
func (b *Builder) URL(path string) string {
	return b.base + path
}

func (b *Builder) Payment(id string) string {
	return b.URL(PaymentsPath + "/" + url.PathEscape(id))
}

func (b *Builder) PaymentEvents(id string) string {
	return b.Payment(id) + "/events"
}

func (b *Builder) PaymentRefunds(id string) string {
	return b.Payment(id) + "/refunds"
}

func (b *Builder) PaymentRefund(paymentID, refundID string) string {
	return b.PaymentRefunds(paymentID) + "/" + url.PathEscape(refundID)
}

func (b *Builder) PaymentCancel(id string) string {
	return b.Payment(id) + "/cancel"
}

func (b *Builder) PaymentCapture(id string) string {
	return b.Payment(id) + "/capture"
}

func (b *Builder) Agreement(id string) string {
	return b.URL(AgreementsPath + "/" + url.PathEscape(id))
}

func (b *Builder) AgreementCancel(id string) string {
	return b.Agreement(id) + "/cancel"
}

func (b *Builder) Mandate(id string) string {
	return b.URL(MandatesPath + "/" + url.PathEscape(id))
}

// SearchLinks rewrites backend pagination links onto publicPath. Missing
// links stay missing.
func (b *Builder) SearchLinks(links model.SearchLinks, publicPath string) model.SearchLinks {
	return model.SearchLinks{
		Self:      b.pageLink(links.Self, publicPath),
		FirstPage: b.pageLink(links.FirstPage, publicPath),
		LastPage:  b.pageLink(links.LastPage, publicPath),
		PrevPage:  b.pageLink(links.PrevPage, publicPath),
		NextPage:  b.pageLink(links.NextPage, publicPath),
	}
}

func (b *Builder) pageLink(link *model.PageLink, publicPath string) *model.PageLink {
	if link == nil || link.Href == "" {
		return nil
	}
	return &model.PageLink{Href: b.RewriteHref(link.Href, publicPath)}
}

// RewriteHref keeps the public query parameters of a backend href and moves
// it onto publicPath.
func (b *Builder) RewriteHref(href, publicPath string) string {
	target := b.URL(publicPath)
	parsed, err := url.Parse(href)
	if err != nil {
		return target
	}
	query := parsed.Query()
	for _, p := range backendOnlyParams {
		query.Del(p)
	}
	if len(query) == 0 {
		return target
	}
	return target + "?" + query.Encode()
}
