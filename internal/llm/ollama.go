package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/joestump/joe-advisor/internal/config"
)

const defaultOllamaBaseURL = "http://localhost:11434"

type ollamaGenerator struct {
	baseURL string
	client  *http.Client
}

func newOllamaGenerator(cfg *config.Config) *ollamaGenerator {
	baseURL := cfg.LLM.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	return &ollamaGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		// No client timeout; Invoke bounds every call through the context.
		client: &http.Client{},
	}
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

func (o *ollamaGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	body := ollamaRequest{
		Model:   req.Model,
		Prompt:  req.Prompt,
		Stream:  false,
		Options: ollamaOptions{Temperature: req.Temperature},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var apiResp ollamaResponse
	if resp.StatusCode != http.StatusOK {
		if json.Unmarshal(respBody, &apiResp) == nil && apiResp.Error != "" {
			return "", fmt.Errorf("%w: ollama returned %d: %s", ErrInferenceFailed, resp.StatusCode, apiResp.Error)
		}
		return "", fmt.Errorf("%w: ollama returned %d: %s", ErrInferenceFailed, resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrInferenceFailed, err)
	}
	if apiResp.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrInferenceFailed, apiResp.Error)
	}
	return apiResp.Response, nil
}
