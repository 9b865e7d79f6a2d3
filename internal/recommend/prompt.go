package recommend

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"text/template"
)

//go:embed prompt.tmpl
var defaultPromptTemplate string

// PromptData holds the variables available in the prompt template. Values are
// inserted as-is; user text is not escaped or sanitised.
type PromptData struct {
	Product         string
	Income          string
	CreditScore     string
	LoanAmount      string
	RepaymentPeriod string
}

// samplePromptData is executed against every template at construction time so
// a template referencing an unknown field fails early instead of per request.
var samplePromptData = PromptData{
	Product:         "loan",
	Income:          "1",
	CreditScore:     "1",
	LoanAmount:      "1",
	RepaymentPeriod: "1",
}

func promptDataFrom(r RecommendationRequest) PromptData {
	return PromptData{
		Product:         r.Product.Label(),
		Income:          r.Income.String(),
		CreditScore:     r.CreditScore,
		LoanAmount:      r.LoanAmount,
		RepaymentPeriod: r.RepaymentPeriod,
	}
}

// PromptBuilder renders a RecommendationRequest into the text sent to the LLM.
// It is safe for concurrent use.
type PromptBuilder struct {
	tmpl *template.Template
}

// NewPromptBuilder parses the prompt template. If customTemplate is non-empty
// it is used instead of the embedded default.
func NewPromptBuilder(customTemplate string) (*PromptBuilder, error) {
	src := defaultPromptTemplate
	if customTemplate != "" {
		src = customTemplate
	}

	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}
	if err := tmpl.Execute(io.Discard, samplePromptData); err != nil {
		return nil, fmt.Errorf("check prompt template: %w", err)
	}
	return &PromptBuilder{tmpl: tmpl}, nil
}

// Build validates req and renders the prompt. It fails with an
// *IncompleteRequestError when any field is missing.
func (b *PromptBuilder) Build(req RecommendationRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, promptDataFrom(req)); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}

var defaultBuilder = mustPromptBuilder()

func mustPromptBuilder() *PromptBuilder {
	b, err := NewPromptBuilder("")
	if err != nil {
		panic(err)
	}
	return b
}

// BuildPrompt renders req with the embedded default template.
func BuildPrompt(req RecommendationRequest) (string, error) {
	return defaultBuilder.Build(req)
}
