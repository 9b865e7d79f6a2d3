package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/joestump/joe-advisor/internal/config"
)

var (
	// ErrInferenceUnavailable is returned when the inference service cannot be reached.
	ErrInferenceUnavailable = errors.New("inference service unavailable")

	// ErrInferenceTimeout is returned when no response arrives within the configured bound.
	ErrInferenceTimeout = errors.New("inference service timed out")

	// ErrInferenceFailed is returned when the service answered but produced no usable text.
	ErrInferenceFailed = errors.New("inference failed")
)

// GenerateRequest is a single text-generation call. The prompt is the entire
// model input.
type GenerateRequest struct {
	Model       string
	Temperature float64
	Prompt      string
}

// Generator sends a prompt to an inference service and returns the generated
// text unmodified.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// New creates a Generator for the configured provider.
func New(cfg *config.Config) (Generator, error) {
	switch cfg.LLM.Provider {
	case "":
		return nil, fmt.Errorf("no LLM provider configured")
	case "ollama":
		return newOllamaGenerator(cfg), nil
	case "openai", "openai-compatible":
		return newOpenAIGenerator(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.LLM.Provider)
	}
}
