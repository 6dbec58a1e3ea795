package textgen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/openai/openai-go/v3"
	"github.com/rs/zerolog/log"
)

type retryGenerator struct {
	next       Generator
	maxTries   uint
	timeout    time.Duration
	total      time.Duration
	newBackOff func() backoff.BackOff
}

// WithRetry retries failed generations with exponential backoff, up to
// maxRetries extra attempts. Each attempt is bounded by timeout and the whole
// call, backoff included, by total; zero leaves either unbounded. Context
// cancellation, empty responses and client errors are not retried.
func WithRetry(next Generator, maxRetries int, timeout, total time.Duration) Generator {
	return withRetry(next, maxRetries, timeout, total, func() backoff.BackOff {
		return backoff.NewExponentialBackOff()
	})
}

func withRetry(next Generator, maxRetries int, timeout, total time.Duration, newBackOff func() backoff.BackOff) *retryGenerator {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &retryGenerator{
		next:       next,
		maxTries:   uint(maxRetries) + 1,
		timeout:    timeout,
		total:      total,
		newBackOff: newBackOff,
	}
}

func (r *retryGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	opts := []backoff.RetryOption{
		backoff.WithBackOff(r.newBackOff()),
		backoff.WithMaxTries(r.maxTries),
	}
	if r.total > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.total)
		defer cancel()
		opts = append(opts, backoff.WithMaxElapsedTime(r.total))
	}

	attempt := 0
	text, err := backoff.Retry(ctx, func() (string, error) {
		attempt++
		attemptCtx := ctx
		if r.timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, r.timeout)
			defer cancel()
		}

		text, err := r.next.Generate(attemptCtx, prompt, maxTokens)
		switch {
		case err == nil:
			return text, nil
		case ctx.Err() != nil, !retryable(err):
			return "", backoff.Permanent(err)
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("Text generation attempt failed")
		return "", err
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w after %d attempt(s): %w", ErrGeneration, attempt, err)
	}
	return text, nil
}

// retryable reports whether another attempt could succeed. Provider 4xx
// answers other than rate limiting repeat identically.
func retryable(err error) bool {
	if errors.Is(err, ErrEmptyResponse) {
		return false
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		code := apiErr.StatusCode
		if code >= 400 && code < 500 && code != http.StatusTooManyRequests && code != http.StatusRequestTimeout {
			return false
		}
	}
	return true
}
