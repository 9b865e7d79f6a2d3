package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/joestump/joe-advisor/internal/api"
	"github.com/joestump/joe-advisor/internal/llm"
	"github.com/joestump/joe-advisor/internal/recommend"
)

// FormHandler serves the recommendation form.
type FormHandler struct {
	recommender api.Recommender
	logger      *zap.Logger
}

// NewFormHandler creates a new FormHandler.
func NewFormHandler(rec api.Recommender, logger *zap.Logger) *FormHandler {
	return &FormHandler{recommender: rec, logger: logger}
}

// ProductOption is one entry of the product select.
type ProductOption struct {
	Value    string
	Label    string
	Selected bool
}

// FormValues echoes the raw text the user typed back into the inputs.
type FormValues struct {
	Product         string
	Income          string
	CreditScore     string
	LoanAmount      string
	RepaymentPeriod string
}

// IndexPage is the template data for the recommendation page.
type IndexPage struct {
	BasePage
	Products       []ProductOption
	Form           FormValues
	Hints          map[string]string
	Flash          *Flash
	Recommendation *recommend.Recommendation
}

// Show renders GET /.
func (h *FormHandler) Show(w http.ResponseWriter, r *http.Request) {
	render(w, "index.html", newIndexPage(FormValues{}))
}

// Submit handles POST /recommend. The page is always re-rendered with the
// submitted values so the user can correct them and try again.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	form := FormValues{
		Product:         r.PostFormValue("product_interested"),
		Income:          r.PostFormValue("income"),
		CreditScore:     r.PostFormValue("credit_score"),
		LoanAmount:      r.PostFormValue("loan_amount"),
		RepaymentPeriod: r.PostFormValue("repayment_period"),
	}
	page := newIndexPage(form)

	req, err := form.request()
	if err == nil {
		page.Recommendation, err = h.recommender.Recommend(r.Context(), req)
	}
	if err != nil {
		page.Flash = &Flash{Type: "error", Message: h.message(err)}
	}

	if isHTMX(r) {
		renderContent(w, "index.html", page)
		return
	}
	render(w, "index.html", page)
}

// request converts the submitted text into a RecommendationRequest.
func (f FormValues) request() (recommend.RecommendationRequest, error) {
	product, err := recommend.ParseProduct(f.Product)
	if err != nil {
		return recommend.RecommendationRequest{}, err
	}
	req := recommend.RecommendationRequest{
		Product:         product,
		CreditScore:     f.CreditScore,
		LoanAmount:      f.LoanAmount,
		RepaymentPeriod: f.RepaymentPeriod,
	}
	if s := strings.TrimSpace(f.Income); s != "" {
		income, err := decimal.NewFromString(s)
		if err != nil {
			return req, errInvalidIncome
		}
		req.Income = &income
	}
	return req, nil
}

var errInvalidIncome = errors.New("income must be a number")

// message turns a recommendation error into the text shown to the user.
func (h *FormHandler) message(err error) string {
	switch {
	case errors.Is(err, recommend.ErrIncompleteRequest):
		return "Please fill in all the fields to get a recommendation."
	case errors.Is(err, errInvalidIncome):
		return "Income must be a number."
	case errors.Is(err, recommend.ErrNegativeIncome):
		return "Income cannot be negative."
	case errors.Is(err, recommend.ErrUnknownProduct):
		return "Please select a product type from the list."
	case errors.Is(err, llm.ErrInferenceUnavailable):
		return "The recommendation service is unavailable. Please try again later."
	case errors.Is(err, llm.ErrInferenceTimeout):
		return "The recommendation service took too long to answer. Please try again."
	default:
		h.logger.Error("form recommendation failed", zap.Error(err))
		return "Could not generate a recommendation. Please try again."
	}
}

func newIndexPage(form FormValues) IndexPage {
	selected, _ := recommend.ParseProduct(form.Product)

	options := []ProductOption{{Value: "", Label: "None", Selected: selected == ""}}
	for _, p := range recommend.Products() {
		options = append(options, ProductOption{
			Value:    string(p),
			Label:    p.Label(),
			Selected: p == selected,
		})
	}

	return IndexPage{
		BasePage: newBasePage(),
		Products: options,
		Form:     form,
		Hints:    hints(form),
	}
}

// hints returns a prompt for every input that is still empty, keyed by field.
func hints(form FormValues) map[string]string {
	values := map[recommend.Field]string{
		recommend.FieldIncome:          form.Income,
		recommend.FieldCreditScore:     form.CreditScore,
		recommend.FieldLoanAmount:      form.LoanAmount,
		recommend.FieldRepaymentPeriod: form.RepaymentPeriod,
	}

	out := make(map[string]string)
	if p, err := recommend.ParseProduct(form.Product); err == nil && p == "" {
		out[string(recommend.FieldProduct)] = "Please select a product type."
	}
	for f, v := range values {
		if strings.TrimSpace(v) == "" {
			out[string(f)] = "Please enter your " + f.Label() + "."
		}
	}
	return out
}
