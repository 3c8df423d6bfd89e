// Package ledger is the client of the ledger service, the durable read store
// of transactions and agreements.
package ledger

import (
	"context"
	"net/url"

	"publicapi/internal/backend"
)

// Client calls ledger.
type Client struct {
	http *backend.Client
}

// New wraps a backend client pointed at ledger.
func New(c *backend.Client) *Client {
	return &Client{http: c}
}

// Ping calls the ledger healthcheck.
func (c *Client) Ping(ctx context.Context) error {
	return c.http.Ping(ctx)
}

// GetTransaction fetches a transaction of the given type. parentID scopes
// refund lookups to their payment and may be empty.
func (c *Client) GetTransaction(ctx context.Context, accountID, id, transactionType, parentID string) (*Transaction, error) {
	query := url.Values{
		"account_id":       {accountID},
		"transaction_type": {transactionType},
	}
	if parentID != "" {
		query.Set("parent_external_id", parentID)
	}

	var tx Transaction
	if _, err := c.http.Get(ctx, "/v1/transaction/"+backend.PathEscape(id), query, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetEvents fetches the event history of a transaction.
func (c *Client) GetEvents(ctx context.Context, accountID, id string) (*Events, error) {
	query := url.Values{
		"gateway_account_id": {accountID},
		"status_version":     {"1"},
	}
	var events Events
	if _, err := c.http.Get(ctx, "/v1/transaction/"+backend.PathEscape(id)+"/event", query, &events); err != nil {
		return nil, err
	}
	return &events, nil
}

// GetRefunds lists the refunds of a payment.
func (c *Client) GetRefunds(ctx context.Context, accountID, paymentID string) (*Refunds, error) {
	query := url.Values{
		"gateway_account_id": {accountID},
		"transaction_type":   {TypeRefund},
	}
	var refunds Refunds
	if _, err := c.http.Get(ctx, "/v1/transaction/"+backend.PathEscape(paymentID)+"/transaction", query, &refunds); err != nil {
		return nil, err
	}
	return &refunds, nil
}

// SearchTransactions searches transactions of one type. query holds the public
// search parameters; backend-only scoping is added here.
func (c *Client) SearchTransactions(ctx context.Context, accountID, transactionType string, query url.Values) (*TransactionSearch, error) {
	q := cloneQuery(query)
	q.Set("account_id", accountID)
	q.Set("transaction_type", transactionType)
	if transactionType == TypePayment {
		q.Set("status_version", "1")
	} else {
		q.Set("with_parent_transaction", "false")
	}
	if q.Get("reference") != "" {
		q.Set("exact_reference_match", "true")
	}

	var result TransactionSearch
	if _, err := c.http.Get(ctx, "/v1/transaction", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAgreement fetches an agreement.
func (c *Client) GetAgreement(ctx context.Context, accountID, agreementID string) (*Agreement, error) {
	query := url.Values{"account_id": {accountID}}
	var agreement Agreement
	if _, err := c.http.Get(ctx, "/v1/agreement/"+backend.PathEscape(agreementID), query, &agreement); err != nil {
		return nil, err
	}
	return &agreement, nil
}

// SearchAgreements searches the agreements of an account.
func (c *Client) SearchAgreements(ctx context.Context, accountID string, query url.Values) (*AgreementSearch, error) {
	q := cloneQuery(query)
	q.Set("account_id", accountID)
	if q.Get("reference") != "" {
		q.Set("exact_reference_match", "true")
	}

	var result AgreementSearch
	if _, err := c.http.Get(ctx, "/v1/agreement", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func cloneQuery(query url.Values) url.Values {
	q := make(url.Values, len(query)+4)
	for k, v := range query {
		if len(v) > 0 && v[0] != "" {
			q[k] = append([]string(nil), v...)
		}
	}
	return q
}
