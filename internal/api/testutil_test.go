package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/joestump/joe-advisor/internal/api"
	"github.com/joestump/joe-advisor/internal/llm"
	"github.com/joestump/joe-advisor/internal/recommend"
)

// fakeGenerator stands in for the inference service.
type fakeGenerator struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, req llm.GenerateRequest) (string, error) {
	f.prompts = append(f.prompts, req.Prompt)
	return f.text, f.err
}

// testEnv holds the router and the generator behind it.
type testEnv struct {
	Router    http.Handler
	Generator *fakeGenerator
}

// newTestEnv wires the API router to a real recommendation service backed by
// a fake generator.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gen := &fakeGenerator{text: "We recommend a fixed-rate personal loan."}
	svc := recommend.NewService(gen, nil, recommend.ServiceOptions{
		Model:       "llama2",
		Temperature: 0.7,
		Timeout:     time.Second,
	}, zaptest.NewLogger(t))

	router := api.NewAPIRouter(api.Deps{Recommender: svc, Logger: zaptest.NewLogger(t)})
	return &testEnv{Router: router, Generator: gen}
}

// post sends a JSON body to POST /recommendations.
func (e *testEnv) post(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}
