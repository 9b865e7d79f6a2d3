package recommend

import (
	"errors"
	"strings"
)

var (
	// ErrIncompleteRequest matches any *IncompleteRequestError via errors.Is.
	ErrIncompleteRequest = errors.New("please fill in all the fields to get a recommendation")

	// ErrUnknownProduct is returned for a product outside the supported set.
	ErrUnknownProduct = errors.New("product must be one of: savings_account, checking_account, loan, credit_card")

	// ErrNegativeIncome is returned when income is below zero.
	ErrNegativeIncome = errors.New("income must not be negative")
)

// IncompleteRequestError lists the fields a request is still missing.
type IncompleteRequestError struct {
	Missing []Field
}

func (e *IncompleteRequestError) Error() string {
	labels := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		labels[i] = f.Label()
	}
	return ErrIncompleteRequest.Error() + " (missing: " + strings.Join(labels, ", ") + ")"
}

func (e *IncompleteRequestError) Is(target error) bool {
	return target == ErrIncompleteRequest
}
