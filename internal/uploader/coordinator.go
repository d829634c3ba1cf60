package uploader

import (
	"context"
	"errors"
	"log"
	"time"

	"mediaup/internal/domain"
	"mediaup/internal/port"
)

// DefaultMaxAttempts is the total attempt budget: the first attempt plus
// three retries.
const DefaultMaxAttempts = 4

// Coordinator drives one upload operation through a bounded retry loop.
// Before every retry it re-validates the credential and lets the route
// request a fresh session; a consumed session is never reused. Each
// operation owns its RetryState; coordinators are safe for concurrent use.
type Coordinator struct {
	creds       port.CredentialSource
	route       port.UploadRoute
	maxAttempts int
	backoffBase time.Duration
	backoffCap  time.Duration
	minValidity time.Duration

	// Sleep is the backoff wait, replaceable in tests.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewCoordinator creates a Coordinator over the given route. Zero values
// fall back to the spec'd defaults (4 attempts, 1s base, 5s cap, 60s
// credential floor).
func NewCoordinator(creds port.CredentialSource, route port.UploadRoute, maxAttempts int, backoffBase, backoffCap, minValidity time.Duration) *Coordinator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if backoffBase <= 0 {
		backoffBase = time.Second
	}
	if backoffCap <= 0 {
		backoffCap = 5 * time.Second
	}
	if minValidity <= 0 {
		minValidity = 60 * time.Second
	}
	return &Coordinator{
		creds:       creds,
		route:       route,
		maxAttempts: maxAttempts,
		backoffBase: backoffBase,
		backoffCap:  backoffCap,
		minValidity: minValidity,
		Sleep:       sleepContext,
	}
}

// Backoff returns the wait before the given retry: exponential from the
// base, capped.
func (c *Coordinator) Backoff(attempt int) time.Duration {
	d := c.backoffBase << (attempt - 1)
	if d > c.backoffCap {
		return c.backoffCap
	}
	return d
}

// Run executes the operation: authorize, transfer, classify, back off,
// repeat. Terminal classifications (validation, authentication, path
// unavailable, anything tagged non-retryable) short-circuit immediately;
// forbidden is retried once; budget exhaustion surfaces the last cause.
func (c *Coordinator) Run(ctx context.Context, bucket domain.BucketClass, asset *domain.MediaAsset, progress port.ProgressFunc) (*domain.UploadResult, error) {
	state := &domain.RetryState{StartedAt: time.Now()}
	forbiddenRetried := false

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		state.Attempt = attempt

		token, err := c.creds.EnsureValid(ctx, c.minValidity)
		if err != nil {
			// Authentication does not self-resolve; never retried here.
			return nil, err
		}

		result, err := c.route.Upload(ctx, token, bucket, asset, progress)
		if err == nil {
			result.Attempts = attempt
			return result, nil
		}
		state.LastErr = err

		var unavailable *domain.PathUnavailableError
		if errors.As(err, &unavailable) {
			return nil, err
		}

		var forbidden *domain.ForbiddenError
		if errors.As(err, &forbidden) {
			if forbiddenRetried {
				log.Printf("uploader.Coordinator: storage denial repeated on attempt %d, giving up", attempt)
				return nil, err
			}
			forbiddenRetried = true
		} else if !domain.IsRetryable(err) {
			return nil, err
		}

		if attempt == c.maxAttempts {
			break
		}

		wait := c.Backoff(attempt)
		log.Printf("uploader.Coordinator: attempt %d/%d failed (%v), retrying in %s",
			attempt, c.maxAttempts, err, wait)
		if err := c.Sleep(ctx, wait); err != nil {
			return nil, err
		}
	}

	log.Printf("uploader.Coordinator: budget exhausted after %d attempts in %s", c.maxAttempts, state.Elapsed())
	return nil, &domain.ExhaustedError{Attempts: c.maxAttempts, Cause: state.LastErr}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
