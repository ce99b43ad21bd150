package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carsharing-backend/internal/logger"
)

// RetryPolicy bounds how often a session status fetch is attempted.
type RetryPolicy struct {
	Attempts       int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = 200 * time.Millisecond
	}
	if p.MaxBackoff < p.InitialBackoff {
		p.MaxBackoff = p.InitialBackoff
	}
	return p
}

// FetchStatus retrieves a session, retrying provider failures with
// exponential backoff. It gives up early when ctx is done or a call times out.
func FetchStatus(ctx context.Context, provider Provider, sessionID string, policy RetryPolicy) (SessionStatus, error) {
	policy = policy.normalized()
	backoff := policy.InitialBackoff

	var lastErr error
	for attempt := 1; attempt <= policy.Attempts; attempt++ {
		s, err := provider.RetrieveSession(ctx, sessionID)
		if err == nil {
			return s.Status, nil
		}
		lastErr = err
		// A timed out call fails the fetch instead of being retried.
		if attempt == policy.Attempts || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}

		logger.Warn("Retrying checkout session fetch", "sessionID", sessionID, "attempt", attempt, "backoff", backoff, "error", err)
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("fetch session %s: %w", sessionID, lastErr)
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > policy.MaxBackoff {
			backoff = policy.MaxBackoff
		}
	}
	return "", lastErr
}
