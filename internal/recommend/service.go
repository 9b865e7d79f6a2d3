package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/joestump/joe-advisor/internal/llm"
	"github.com/joestump/joe-advisor/internal/metrics"
)

// Outcome labels recorded on joeadvisor_recommendations_total.
const (
	StatusOK          = "ok"
	StatusIncomplete  = "incomplete"
	StatusInvalid     = "invalid"
	StatusUnavailable = "unavailable"
	StatusTimeout     = "timeout"
	StatusFailed      = "failed"
	StatusCanceled    = "canceled"
)

// ServiceOptions fixes the generation parameters used for every request.
type ServiceOptions struct {
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Recommendation is the generated text plus the metadata of the call that
// produced it.
type Recommendation struct {
	ID       string
	Text     string
	Model    string
	Prompt   string
	Duration time.Duration
}

// Service turns a RecommendationRequest into a Recommendation. It holds no
// per-request state; callers own the request and may resubmit it after any
// failure.
type Service struct {
	gen     llm.Generator
	builder *PromptBuilder
	opts    ServiceOptions
	logger  *zap.Logger
}

// NewService creates a Service. A nil builder uses the embedded template.
func NewService(gen llm.Generator, builder *PromptBuilder, opts ServiceOptions, logger *zap.Logger) *Service {
	if builder == nil {
		builder = defaultBuilder
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gen: gen, builder: builder, opts: opts, logger: logger}
}

// Recommend validates req, renders the prompt and calls the inference service
// exactly once. Incomplete requests never reach the generator.
func (s *Service) Recommend(ctx context.Context, req RecommendationRequest) (*Recommendation, error) {
	id := uuid.NewString()
	log := s.logger.With(zap.String("request_id", id))

	prompt, err := s.builder.Build(req)
	if err != nil {
		var incomplete *IncompleteRequestError
		if errors.As(err, &incomplete) {
			for _, f := range incomplete.Missing {
				metrics.IncompleteFieldsTotal.WithLabelValues(string(f)).Inc()
			}
			metrics.RecommendationsTotal.WithLabelValues(StatusIncomplete).Inc()
		} else {
			metrics.RecommendationsTotal.WithLabelValues(StatusInvalid).Inc()
		}
		log.Info("recommendation request rejected", zap.Error(err))
		return nil, err
	}

	log.Debug("invoking model", zap.String("model", s.opts.Model), zap.Float64("temperature", s.opts.Temperature))

	start := time.Now()
	text, err := llm.Invoke(ctx, s.gen, llm.GenerateRequest{
		Model:       s.opts.Model,
		Temperature: s.opts.Temperature,
		Prompt:      prompt,
	}, s.opts.Timeout)
	elapsed := time.Since(start)
	metrics.InferenceDuration.WithLabelValues(s.opts.Model).Observe(elapsed.Seconds())

	if err != nil {
		status := StatusFor(err)
		metrics.RecommendationsTotal.WithLabelValues(status).Inc()
		log.Warn("recommendation failed",
			zap.String("status", status),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.RecommendationsTotal.WithLabelValues(StatusOK).Inc()
	log.Info("recommendation generated",
		zap.String("model", s.opts.Model),
		zap.Duration("elapsed", elapsed),
		zap.Int("chars", len(text)),
	)

	return &Recommendation{
		ID:       id,
		Text:     text,
		Model:    s.opts.Model,
		Prompt:   prompt,
		Duration: elapsed,
	}, nil
}

// StatusFor maps an error returned by Recommend to its outcome label.
func StatusFor(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrIncompleteRequest):
		return StatusIncomplete
	case errors.Is(err, ErrUnknownProduct), errors.Is(err, ErrNegativeIncome):
		return StatusInvalid
	case errors.Is(err, llm.ErrInferenceUnavailable):
		return StatusUnavailable
	case errors.Is(err, llm.ErrInferenceTimeout):
		return StatusTimeout
	case errors.Is(err, context.Canceled):
		return StatusCanceled
	default:
		return StatusFailed
	}
}
