package model

// DisputeSettlementSummary reports when a dispute was settled.
type DisputeSettlementSummary struct {
	SettledDate string `json:"settled_date,omitempty"`
}

// DisputeLinks links a dispute to the disputed payment.
type DisputeLinks struct {
	Payment *Link `json:"payment"`
}

// Dispute is a chargeback raised against a payment.
type Dispute struct {
	DisputeID         string                    `json:"dispute_id"`
	PaymentID         string                    `json:"payment_id"`
	Amount            int64                     `json:"amount"`
	Fee               *int64                    `json:"fee,omitempty"`
	NetAmount         *int64                    `json:"net_amount,omitempty"`
	CreatedDate       string                    `json:"created_date"`
	EvidenceDueDate   string                    `json:"evidence_due_date,omitempty"`
	Reason            string                    `json:"reason,omitempty"`
	Status            string                    `json:"status"`
	SettlementSummary *DisputeSettlementSummary `json:"settlement_summary,omitempty"`
	Links             DisputeLinks              `json:"_links"`
}
