// Package recommend holds the bank product recommendation request, the prompt
// builder that renders it, and the service that sends the prompt to an LLM.
package recommend

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is the kind of bank product the customer is interested in.
type Product string

const (
	ProductSavingsAccount  Product = "savings_account"
	ProductCheckingAccount Product = "checking_account"
	ProductLoan            Product = "loan"
	ProductCreditCard      Product = "credit_card"
)

var productLabels = map[Product]string{
	ProductSavingsAccount:  "savings account",
	ProductCheckingAccount: "checking account",
	ProductLoan:            "loan",
	ProductCreditCard:      "credit card",
}

// Products returns every selectable product in display order.
func Products() []Product {
	return []Product{ProductSavingsAccount, ProductCheckingAccount, ProductLoan, ProductCreditCard}
}

// Label is the human-readable name used in forms and in the prompt.
func (p Product) Label() string {
	if l, ok := productLabels[p]; ok {
		return l
	}
	return string(p)
}

// Valid reports whether p is one of the known products.
func (p Product) Valid() bool {
	_, ok := productLabels[p]
	return ok
}

// ParseProduct accepts a canonical value ("credit_card") or a display label
// ("credit card"), case-insensitively. An empty string or "None" yields the
// zero Product, meaning no selection was made.
func ParseProduct(s string) (Product, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return "", nil
	}
	key := Product(strings.ReplaceAll(s, " ", "_"))
	if !key.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownProduct, s)
	}
	return key, nil
}

// Field names one of the five request inputs.
type Field string

const (
	FieldProduct         Field = "product_interested"
	FieldIncome          Field = "income"
	FieldCreditScore     Field = "credit_score"
	FieldLoanAmount      Field = "loan_amount"
	FieldRepaymentPeriod Field = "repayment_period"
)

// Fields returns all request fields in prompt order.
func Fields() []Field {
	return []Field{FieldProduct, FieldIncome, FieldCreditScore, FieldLoanAmount, FieldRepaymentPeriod}
}

// Label returns the field name as shown to users.
func (f Field) Label() string {
	switch f {
	case FieldProduct:
		return "product type"
	case FieldIncome:
		return "income"
	case FieldCreditScore:
		return "credit score"
	case FieldLoanAmount:
		return "loan amount"
	case FieldRepaymentPeriod:
		return "repayment period"
	}
	return string(f)
}

// RecommendationRequest is the customer input collected by a form, the API or
// the CLI. Every field is optional until filled; a nil Income means the income
// was not provided, while a zero Income is a real answer.
type RecommendationRequest struct {
	Product         Product          `json:"product_interested"`
	Income          *decimal.Decimal `json:"income"`
	CreditScore     string           `json:"credit_score"`
	LoanAmount      string           `json:"loan_amount"`
	RepaymentPeriod string           `json:"repayment_period"`
}

// Missing returns the fields that are absent or blank, in prompt order.
func (r RecommendationRequest) Missing() []Field {
	var missing []Field
	if r.Product == "" {
		missing = append(missing, FieldProduct)
	}
	if r.Income == nil {
		missing = append(missing, FieldIncome)
	}
	if strings.TrimSpace(r.CreditScore) == "" {
		missing = append(missing, FieldCreditScore)
	}
	if strings.TrimSpace(r.LoanAmount) == "" {
		missing = append(missing, FieldLoanAmount)
	}
	if strings.TrimSpace(r.RepaymentPeriod) == "" {
		missing = append(missing, FieldRepaymentPeriod)
	}
	return missing
}

// Complete reports whether all five fields are filled in.
func (r RecommendationRequest) Complete() bool {
	return len(r.Missing()) == 0
}

// Validate returns an *IncompleteRequestError when fields are missing, and
// ErrUnknownProduct or ErrNegativeIncome for values that can never be valid.
func (r RecommendationRequest) Validate() error {
	if missing := r.Missing(); len(missing) > 0 {
		return &IncompleteRequestError{Missing: missing}
	}
	if !r.Product.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownProduct, r.Product)
	}
	if r.Income.IsNegative() {
		return ErrNegativeIncome
	}
	return nil
}
