package main

import (
	"errors"
	"testing"

	"github.com/joestump/joe-advisor/internal/recommend"
)

func TestBuildRequest(t *testing.T) {
	req, err := buildRequest("Credit Card", "0", "700", "5000", "3")
	if err != nil {
		t.Fatalf("buildRequest: %v", err)
	}
	if req.Product != recommend.ProductCreditCard {
		t.Errorf("Product = %q", req.Product)
	}
	if req.Income == nil || !req.Income.IsZero() {
		t.Errorf("Income = %v, want 0", req.Income)
	}
	if !req.Complete() {
		t.Errorf("Missing = %v", req.Missing())
	}
}

func TestBuildRequest_EmptyFlagsAreMissing(t *testing.T) {
	req, err := buildRequest("", "", "700", "", "3")
	if err != nil {
		t.Fatalf("buildRequest: %v", err)
	}
	got := req.Missing()
	want := []recommend.Field{recommend.FieldProduct, recommend.FieldIncome, recommend.FieldLoanAmount}
	if len(got) != len(want) {
		t.Fatalf("Missing = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Missing[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildRequest_Invalid(t *testing.T) {
	if _, err := buildRequest("mortgage", "1", "1", "1", "1"); !errors.Is(err, recommend.ErrUnknownProduct) {
		t.Errorf("err = %v, want ErrUnknownProduct", err)
	}
	if _, err := buildRequest("loan", "abc", "1", "1", "1"); err == nil {
		t.Error("expected error for non-numeric income")
	}
}
