package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// MerchantConfiguration is the allowed loan range and display metadata for a merchant.
type MerchantConfiguration struct {
	MerchantID        int64           `json:"merchant_id"`
	Name              string          `json:"name"`
	MinimumLoanAmount decimal.Decimal `json:"minimum_loan_amount"`
	MaximumLoanAmount decimal.Decimal `json:"maximum_loan_amount"`
	PrequalEnabled    bool            `json:"prequal_enabled"`
}

// LoanApplication is a borrower's request for an amount against a merchant.
type LoanApplication struct {
	LoanApplicationID int64           `json:"loan_application_id"`
	State             string          `json:"state"` // see domain.State*
	MerchantID        int64           `json:"merchant_id"`
	RequestedAmount   decimal.Decimal `json:"requested_amount"`
	Currency          string          `json:"currency"`
	CreatedAt         time.Time       `json:"created_at"`

	// Filled in by later workflow steps; empty at creation.
	UserInput       json.RawMessage   `json:"user_input,omitempty"`
	UserInputEvents []json.RawMessage `json:"user_input_events"`
	FinalDecision   json.RawMessage   `json:"final_decision,omitempty"`
	DecisionEvents  []json.RawMessage `json:"decision_events"`
	SelectedTermsID string            `json:"selected_terms_id,omitempty"`
}

// NextStep tells the caller which workflow stage to complete and where to submit it.
type NextStep struct {
	LoanApplicationID int64  `json:"loan_application_id"`
	NextStep          string `json:"next_step"`
	SubmitURL         string `json:"submit_url"`
}
