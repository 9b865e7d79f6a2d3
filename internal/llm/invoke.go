package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"
)

// Invoke performs exactly one generation call bounded by timeout and maps the
// outcome onto ErrInferenceTimeout, ErrInferenceUnavailable or
// ErrInferenceFailed. A cancellation by the caller is returned unchanged.
// The generated text is returned verbatim.
func Invoke(ctx context.Context, g Generator, req GenerateRequest, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	text, err := g.Generate(ctx, req)
	if err != nil {
		return "", classify(ctx, err)
	}
	if text == "" {
		return "", fmt.Errorf("%w: empty response from model %q", ErrInferenceFailed, req.Model)
	}
	return text, nil
}

func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrInferenceTimeout),
		errors.Is(err, ErrInferenceUnavailable),
		errors.Is(err, ErrInferenceFailed):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrInferenceTimeout, err)
	case errors.Is(err, context.Canceled):
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrInferenceTimeout, err)
	}
	var urlErr *url.Error
	var opErr *net.OpError
	if errors.As(err, &urlErr) || errors.As(err, &opErr) {
		return fmt.Errorf("%w: %v", ErrInferenceUnavailable, err)
	}
	return fmt.Errorf("%w: %v", ErrInferenceFailed, err)
}
