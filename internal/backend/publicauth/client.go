// Package publicauth resolves API keys to gateway accounts through the public
// auth service.
package publicauth

import (
	"context"
	"net/http"

	"publicapi/internal/backend"
)

// Token types issued by public auth.
const (
	TokenTypeCard        = "CARD"
	TokenTypeDirectDebit = "DIRECT_DEBIT"
)

// Account is the gateway account an API key belongs to.
type Account struct {
	AccountID string `json:"account_id"`
	TokenLink string `json:"token_link"`
	TokenType string `json:"token_type"`
}

// Client calls public auth.
type Client struct {
	http *backend.Client
}

// New wraps a backend client pointed at public auth.
func New(c *backend.Client) *Client {
	return &Client{http: c}
}

// Ping calls the public auth healthcheck.
func (c *Client) Ping(ctx context.Context) error {
	return c.http.Ping(ctx)
}

// Authenticate resolves apiKey. A key public auth does not know yields an
// error carrying status 401.
func (c *Client) Authenticate(ctx context.Context, apiKey string) (*Account, error) {
	var account Account
	_, err := c.http.Do(ctx, backend.Request{
		Method: http.MethodGet,
		Path:   "/v1/api/auth",
		Header: http.Header{"Authorization": {"Bearer " + apiKey}},
	}, &account)
	if err != nil {
		return nil, err
	}
	if account.TokenType == "" {
		account.TokenType = TokenTypeCard
	}
	return &account, nil
}
