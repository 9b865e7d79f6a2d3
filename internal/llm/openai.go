package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joestump/joe-advisor/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIBaseURL = "https://api.openai.com"

// openaiGenerator talks to any server exposing the OpenAI chat completions
// API, such as llama.cpp, vLLM or LM Studio running locally.
type openaiGenerator struct {
	client *openai.Client
}

func newOpenAIGenerator(cfg *config.Config) *openaiGenerator {
	baseURL := cfg.LLM.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	clientCfg := openai.DefaultConfig(cfg.LLM.APIKey)
	clientCfg.BaseURL = strings.TrimRight(baseURL, "/") + "/v1"
	return &openaiGenerator{client: openai.NewClientWithConfig(clientCfg)}
}

func (o *openaiGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Temperature: float32(req.Temperature),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: openai API returned %d: %s", ErrInferenceFailed, apiErr.HTTPStatusCode, apiErr.Message)
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
			return "", fmt.Errorf("%w: openai API returned %d: %v", ErrInferenceFailed, reqErr.HTTPStatusCode, reqErr.Err)
		}
		return "", fmt.Errorf("openai request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response from openai", ErrInferenceFailed)
	}
	return resp.Choices[0].Message.Content, nil
}
