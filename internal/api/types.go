package api

import "github.com/shopspring/decimal"

// RecommendationRequest is the request body for POST /api/v1/recommendations.
// Every field may be omitted; omitted fields are reported back as missing.
type RecommendationRequest struct {
	ProductInterested string           `json:"product_interested" example:"loan"`
	Income            *decimal.Decimal `json:"income" swaggertype:"number" example:"75000"`
	CreditScore       string           `json:"credit_score" example:"720"`
	LoanAmount        string           `json:"loan_amount" example:"10000"`
	RepaymentPeriod   string           `json:"repayment_period" example:"5"`
}

// RecommendationResponse is the generated recommendation, returned verbatim.
type RecommendationResponse struct {
	ID             string `json:"id"`
	Recommendation string `json:"recommendation"`
	Model          string `json:"model"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Missing []string `json:"missing,omitempty"`
}
