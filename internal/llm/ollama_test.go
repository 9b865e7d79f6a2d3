package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joestump/joe-advisor/internal/config"
)

func ollamaConfig(baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.LLM.Provider = "ollama"
	cfg.LLM.BaseURL = baseURL
	return cfg
}

func testRequest() GenerateRequest {
	return GenerateRequest{Model: "llama2", Temperature: 0.7, Prompt: "Recommend a product."}
}

func TestOllama_Generate_Success(t *testing.T) {
	var got ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama2","response":" Open a savings account.\n","done":true}`))
	}))
	defer server.Close()

	gen := newOllamaGenerator(ollamaConfig(server.URL + "/"))
	text, err := gen.Generate(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, " Open a savings account.\n", text)
	assert.Equal(t, "llama2", got.Model)
	assert.Equal(t, "Recommend a product.", got.Prompt)
	assert.False(t, got.Stream)
	assert.InDelta(t, 0.7, got.Options.Temperature, 1e-9)
}

func TestOllama_Generate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantSubstr string
	}{
		{
			name:       "model not found",
			status:     http.StatusNotFound,
			body:       `{"error":"model 'llama2' not found, try pulling it first"}`,
			wantSubstr: "model 'llama2' not found",
		},
		{
			name:       "plain text 500",
			status:     http.StatusInternalServerError,
			body:       "boom",
			wantSubstr: "ollama returned 500: boom",
		},
		{
			name:       "invalid json",
			status:     http.StatusOK,
			body:       "{not json",
			wantSubstr: "decode response",
		},
		{
			name:       "error in body",
			status:     http.StatusOK,
			body:       `{"error":"out of memory"}`,
			wantSubstr: "out of memory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			gen := newOllamaGenerator(ollamaConfig(server.URL))
			_, err := Invoke(context.Background(), gen, testRequest(), time.Second)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInferenceFailed)
			assert.Contains(t, err.Error(), tt.wantSubstr)
		})
	}
}

func TestOllama_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	gen := newOllamaGenerator(ollamaConfig(url))
	_, err := Invoke(context.Background(), gen, testRequest(), time.Second)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInferenceUnavailable)
}

func TestOllama_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	gen := newOllamaGenerator(ollamaConfig(server.URL))
	start := time.Now()
	_, err := Invoke(context.Background(), gen, testRequest(), 50*time.Millisecond)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInferenceTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestOllama_DefaultBaseURL(t *testing.T) {
	gen := newOllamaGenerator(ollamaConfig(""))
	assert.Equal(t, "http://localhost:11434", gen.baseURL)
}
