// Package connector is the client of the connector service, the owner of live
// charge, refund, agreement and mandate state.
package connector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"publicapi/internal/backend"
	"publicapi/internal/model"
)

// IdempotencyKeyHeader carries the merchant's idempotency key to connector.
const IdempotencyKeyHeader = "Idempotency-Key"

// Client calls connector.
type Client struct {
	http *backend.Client
}

// New wraps a backend client pointed at connector.
func New(c *backend.Client) *Client {
	return &Client{http: c}
}

// Ping calls the connector healthcheck.
func (c *Client) Ping(ctx context.Context) error {
	return c.http.Ping(ctx)
}

func accountPath(accountID string, format string, args ...any) string {
	escaped := make([]any, len(args))
	for i, a := range args {
		escaped[i] = backend.PathEscape(fmt.Sprint(a))
	}
	return "/v1/api/accounts/" + backend.PathEscape(accountID) + fmt.Sprintf(format, escaped...)
}

// CreateCharge creates a charge. The second result is true when connector
// reports that a charge already exists for idempotencyKey.
func (c *Client) CreateCharge(ctx context.Context, accountID string, req CreateChargeRequest, idempotencyKey string) (*Charge, bool, error) {
	breq := backend.Request{
		Method: http.MethodPost,
		Path:   accountPath(accountID, "/charges"),
		Body:   req,
	}
	if idempotencyKey != "" {
		breq.Header = http.Header{IdempotencyKeyHeader: []string{idempotencyKey}}
	}

	var charge Charge
	status, err := c.http.Do(ctx, breq, &charge)
	if err != nil {
		return nil, false, err
	}
	return &charge, status == http.StatusOK, nil
}

// GetCharge fetches a charge.
func (c *Client) GetCharge(ctx context.Context, accountID, chargeID string) (*Charge, error) {
	var charge Charge
	if _, err := c.http.Get(ctx, accountPath(accountID, "/charges/%s", chargeID), nil, &charge); err != nil {
		return nil, err
	}
	return &charge, nil
}

// GetChargeEvents fetches a charge's state history.
func (c *Client) GetChargeEvents(ctx context.Context, accountID, chargeID string) (*ChargeEvents, error) {
	var events ChargeEvents
	if _, err := c.http.Get(ctx, accountPath(accountID, "/charges/%s/events", chargeID), nil, &events); err != nil {
		return nil, err
	}
	return &events, nil
}

// CancelCharge requests cancellation of a charge.
func (c *Client) CancelCharge(ctx context.Context, accountID, chargeID string) error {
	_, err := c.http.Post(ctx, accountPath(accountID, "/charges/%s/cancel", chargeID), nil, nil)
	return err
}

// CaptureCharge requests capture of a delayed-capture charge.
func (c *Client) CaptureCharge(ctx context.Context, accountID, chargeID string) error {
	_, err := c.http.Post(ctx, accountPath(accountID, "/charges/%s/capture", chargeID), nil, nil)
	return err
}

// CreateRefund submits a refund against a charge.
func (c *Client) CreateRefund(ctx context.Context, accountID, chargeID string, req CreateRefundRequest) (*Refund, error) {
	var refund Refund
	if _, err := c.http.Post(ctx, accountPath(accountID, "/charges/%s/refunds", chargeID), req, &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}

// GetRefunds lists the refunds of a charge.
func (c *Client) GetRefunds(ctx context.Context, accountID, chargeID string) (*Refunds, error) {
	var refunds Refunds
	if _, err := c.http.Get(ctx, accountPath(accountID, "/charges/%s/refunds", chargeID), nil, &refunds); err != nil {
		return nil, err
	}
	return &refunds, nil
}

// GetRefund fetches a single refund of a charge.
func (c *Client) GetRefund(ctx context.Context, accountID, chargeID, refundID string) (*Refund, error) {
	var refund Refund
	if _, err := c.http.Get(ctx, accountPath(accountID, "/charges/%s/refunds/%s", chargeID, refundID), nil, &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}

// CreateTelephoneCharge records a payment taken over the telephone. The
// second result is true when connector already held a record for it.
func (c *Client) CreateTelephoneCharge(ctx context.Context, accountID string, req *model.TelephonePaymentRequest) (*model.TelephonePayment, bool, error) {
	var payment model.TelephonePayment
	status, err := c.http.Post(ctx, accountPath(accountID, "/telephone-charges"), req, &payment)
	if err != nil {
		return nil, false, err
	}
	return &payment, status == http.StatusOK, nil
}

// CreateAgreement creates a recurring payment agreement.
func (c *Client) CreateAgreement(ctx context.Context, accountID string, req *model.CreateAgreementRequest) (*Agreement, error) {
	var agreement Agreement
	if _, err := c.http.Post(ctx, accountPath(accountID, "/agreements"), req, &agreement); err != nil {
		return nil, err
	}
	return &agreement, nil
}

// CancelAgreement cancels an agreement.
func (c *Client) CancelAgreement(ctx context.Context, accountID, agreementID string) error {
	_, err := c.http.Post(ctx, accountPath(accountID, "/agreements/%s/cancel", agreementID), nil, nil)
	return err
}

// CreateMandate creates a direct debit mandate.
func (c *Client) CreateMandate(ctx context.Context, accountID string, req CreateMandateRequest) (*Mandate, error) {
	var mandate Mandate
	if _, err := c.http.Post(ctx, accountPath(accountID, "/mandates"), req, &mandate); err != nil {
		return nil, err
	}
	return &mandate, nil
}

// GetMandate fetches a mandate.
func (c *Client) GetMandate(ctx context.Context, accountID, mandateID string) (*Mandate, error) {
	var mandate Mandate
	if _, err := c.http.Get(ctx, accountPath(accountID, "/mandates/%s", mandateID), nil, &mandate); err != nil {
		return nil, err
	}
	return &mandate, nil
}

// SearchMandates searches the mandates of an account.
func (c *Client) SearchMandates(ctx context.Context, accountID string, query url.Values) (*MandateSearch, error) {
	var result MandateSearch
	if _, err := c.http.Get(ctx, accountPath(accountID, "/mandates"), query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
