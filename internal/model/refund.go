package model

// RefundSettlementSummary reports when a refund settled.
type RefundSettlementSummary struct {
	SettledDate string `json:"settled_date,omitempty"`
}

// RefundLinks are the HAL links of a refund.
type RefundLinks struct {
	Self    *Link `json:"self"`
	Payment *Link `json:"payment"`
}

// Refund is the public representation of a refund.
type Refund struct {
	RefundID          string                   `json:"refund_id"`
	PaymentID         string                   `json:"payment_id,omitempty"`
	CreatedDate       string                   `json:"created_date"`
	Amount            int64                    `json:"amount"`
	Status            string                   `json:"status"`
	SettlementSummary *RefundSettlementSummary `json:"settlement_summary,omitempty"`
	Links             RefundLinks              `json:"_links"`
}

// PaymentRefunds is the response of GET /v1/payments/{paymentId}/refunds.
type PaymentRefunds struct {
	PaymentID string      `json:"payment_id"`
	Links     RefundLinks `json:"_links"`
	Embedded  struct {
		Refunds []Refund `json:"refunds"`
	} `json:"_embedded"`
}

// CreateRefundRequest is the body of POST /v1/payments/{paymentId}/refunds.
type CreateRefundRequest struct {
	Amount                *int64 `json:"amount" validate:"required,min=1,max=10000000"`
	RefundAmountAvailable *int64 `json:"refund_amount_available,omitempty" validate:"omitempty,min=0,max=10000000"`
}
