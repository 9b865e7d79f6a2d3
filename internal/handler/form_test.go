package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/joestump/joe-advisor/internal/llm"
	"github.com/joestump/joe-advisor/internal/recommend"
)

// fakeRecommender records every request and answers with a fixed result.
type fakeRecommender struct {
	text     string
	err      error
	requests []recommend.RecommendationRequest
}

func (f *fakeRecommender) Recommend(ctx context.Context, req recommend.RecommendationRequest) (*recommend.Recommendation, error) {
	f.requests = append(f.requests, req)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return &recommend.Recommendation{ID: "rec-1", Text: f.text, Model: "llama2"}, nil
}

func newTestRouter(t *testing.T) (http.Handler, *fakeRecommender) {
	t.Helper()
	rec := &fakeRecommender{text: "Consider a fixed-rate personal loan."}
	return NewRouter(Deps{Recommender: rec, Logger: zaptest.NewLogger(t)}), rec
}

func completeForm() url.Values {
	return url.Values{
		"product_interested": {"loan"},
		"income":             {"75000"},
		"credit_score":       {"720"},
		"loan_amount":        {"10000"},
		"repayment_period":   {"5"},
	}
}

func submit(t *testing.T, h http.Handler, form url.Values, htmx bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestShow_RendersEmptyFormWithHints(t *testing.T) {
	h, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		"Bank Product Recommendation System",
		`<option value="" selected>None</option>`,
		`<option value="credit_card">credit card</option>`,
		"Please select a product type.",
		"Please enter your income.",
		"Please enter your credit score.",
		"Please enter your loan amount.",
		"Please enter your repayment period.",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, "AI Recommendations:") {
		t.Error("empty form shows a recommendation")
	}
}

func TestSubmit_Complete(t *testing.T) {
	h, rec := newTestRouter(t)

	w := submit(t, h, completeForm(), false)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"AI Recommendations:",
		"Consider a fixed-rate personal loan.",
		`<option value="loan" selected>loan</option>`,
		`value="75000"`,
		`value="720"`,
		`value="10000"`,
		`value="5"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, "Please enter your") {
		t.Error("complete form still shows field hints")
	}

	if len(rec.requests) != 1 {
		t.Fatalf("recommender called %d times, want 1", len(rec.requests))
	}
	got := rec.requests[0]
	if got.Product != recommend.ProductLoan || got.Income == nil || got.Income.String() != "75000" {
		t.Errorf("request = %+v", got)
	}
}

func TestSubmit_Incomplete(t *testing.T) {
	h, rec := newTestRouter(t)

	form := completeForm()
	form.Set("repayment_period", "  ")
	w := submit(t, h, form, false)

	body := w.Body.String()
	if !strings.Contains(body, "Please fill in all the fields to get a recommendation.") {
		t.Error("missing incomplete flash")
	}
	if !strings.Contains(body, "Please enter your repayment period.") {
		t.Error("missing repayment period hint")
	}
	if strings.Contains(body, "Please enter your income.") {
		t.Error("income hint shown for a filled field")
	}
	if strings.Contains(body, "AI Recommendations:") {
		t.Error("incomplete form shows a recommendation")
	}
	if len(rec.requests) != 1 {
		t.Fatalf("recommender called %d times, want 1", len(rec.requests))
	}
}

func TestSubmit_ZeroIncomeIsProvided(t *testing.T) {
	h, rec := newTestRouter(t)

	form := completeForm()
	form.Set("income", "0")
	w := submit(t, h, form, false)

	if !strings.Contains(w.Body.String(), "AI Recommendations:") {
		t.Errorf("zero income rejected: %s", w.Body.String())
	}
	if got := rec.requests[0].Income; got == nil || !got.IsZero() {
		t.Errorf("Income = %v, want 0", got)
	}
}

func TestSubmit_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{name: "income not a number", field: "income", value: "lots", want: "Income must be a number."},
		{name: "negative income", field: "income", value: "-1", want: "Income cannot be negative."},
		{name: "unknown product", field: "product_interested", value: "mortgage", want: "Please select a product type from the list."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestRouter(t)
			form := completeForm()
			form.Set(tt.field, tt.value)

			w := submit(t, h, form, false)
			if !strings.Contains(w.Body.String(), tt.want) {
				t.Errorf("body missing %q", tt.want)
			}
		})
	}
}

func TestSubmit_InferenceErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "unavailable",
			err:  fmt.Errorf("%w: connection refused", llm.ErrInferenceUnavailable),
			want: "The recommendation service is unavailable. Please try again later.",
		},
		{
			name: "timeout",
			err:  fmt.Errorf("%w: deadline exceeded", llm.ErrInferenceTimeout),
			want: "The recommendation service took too long to answer. Please try again.",
		},
		{
			name: "failed",
			err:  fmt.Errorf("%w: model not found", llm.ErrInferenceFailed),
			want: "Could not generate a recommendation. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, rec := newTestRouter(t)
			rec.err = tt.err

			w := submit(t, h, completeForm(), false)
			body := w.Body.String()
			if !strings.Contains(body, tt.want) {
				t.Errorf("body missing %q", tt.want)
			}
			// values survive so the user can resubmit
			if !strings.Contains(body, `value="720"`) {
				t.Error("credit score not echoed back")
			}
		})
	}
}

func TestSubmit_HTMXRendersContentOnly(t *testing.T) {
	h, _ := newTestRouter(t)

	w := submit(t, h, completeForm(), true)
	body := w.Body.String()
	if strings.Contains(body, "<!DOCTYPE html>") {
		t.Error("HTMX response includes the full layout")
	}
	if !strings.Contains(body, "Consider a fixed-rate personal loan.") {
		t.Error("HTMX response missing recommendation")
	}
	if !strings.Contains(body, `id="recommend-form"`) {
		t.Error("HTMX response missing form")
	}
}
