package model

// MandateState is the state of a direct debit mandate.
type MandateState struct {
	Status   string `json:"status"`
	Finished bool   `json:"finished"`
	Details  string `json:"details,omitempty"`
}

// Payer identifies the mandate payer.
type Payer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// MandateLinks are the HAL links of a mandate.
type MandateLinks struct {
	Self        *Link `json:"self"`
	NextURL     *Link `json:"next_url,omitempty"`
	NextURLPost *Link `json:"next_url_post,omitempty"`
}

// Mandate is a direct debit mandate.
type Mandate struct {
	MandateID              string       `json:"mandate_id"`
	ProviderID             string       `json:"provider_id,omitempty"`
	Reference              string       `json:"reference"`
	BankStatementReference string       `json:"bank_statement_reference,omitempty"`
	Description            string       `json:"description,omitempty"`
	ReturnURL              string       `json:"return_url"`
	State                  MandateState `json:"state"`
	PaymentProvider        string       `json:"payment_provider,omitempty"`
	CreatedDate            string       `json:"created_date"`
	Payer                  *Payer       `json:"payer,omitempty"`
	Links                  MandateLinks `json:"_links"`
}

// CreateMandateRequest is the body of POST /v1/directdebit/mandates.
type CreateMandateRequest struct {
	ReturnURL   string `json:"return_url" validate:"required,max=2000,http_url"`
	Reference   string `json:"reference" validate:"required,max=255"`
	Description string `json:"description,omitempty" validate:"omitempty,max=255"`
}
