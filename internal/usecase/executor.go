package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/mikiasgoitom/likesync/internal/domain/contract"
	"github.com/mikiasgoitom/likesync/internal/domain/entity"
	"github.com/mikiasgoitom/likesync/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/likesync/internal/usecase/contract"
)

// MutationExecutor drives a remote like/unlike call through its attempt
// budget, retrying retryable failures with exponential backoff.
//
// Retry policy: transport faults and 5xx responses back off with
// base * 2^attempt (no jitter; known limitation). A 429 sleeps for the
// server's Retry-After instead and consumes one attempt slot, so persistent
// throttling cannot extend the budget; after the last attempt the 429
// surfaces to the caller as its rate-limited error. 4xx terminal failures,
// 401 and unknown statuses fail immediately.
type MutationExecutor struct {
	api         contract.ILikeAPI
	logger      usecasecontract.IAppLogger
	maxAttempts int
	baseBackoff time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewMutationExecutor creates an executor with the given attempt budget and
// base backoff. Non-positive values fall back to 3 attempts and 1000 ms.
func NewMutationExecutor(api contract.ILikeAPI, logger usecasecontract.IAppLogger, maxAttempts int, baseBackoff time.Duration) *MutationExecutor {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if baseBackoff <= 0 {
		baseBackoff = 1000 * time.Millisecond
	}
	return &MutationExecutor{
		api:         api,
		logger:      logger,
		maxAttempts: maxAttempts,
		baseBackoff: baseBackoff,
		sleep:       sleepContext,
	}
}

// Execute performs the mutation for itemID, liking when like is true and
// unliking otherwise. It returns the authoritative server summary, or an
// error from the entity taxonomy once the budget is exhausted or a
// non-retryable failure occurs.
func (e *MutationExecutor) Execute(ctx context.Context, itemID string, like bool) (*entity.LikeSummary, error) {
	call := e.api.Unlike
	if like {
		call = e.api.Like
	}

	var lastErr error
	for attempt := 0; attempt < e.maxAttempts; attempt++ {
		metrics.NetworkAttemptsTotal.Inc()
		summary, err := call(ctx, itemID)
		if err == nil {
			return summary, nil
		}
		lastErr = err

		var rl *entity.RateLimitedError
		switch {
		case errors.As(err, &rl):
			if attempt == e.maxAttempts-1 {
				return nil, err
			}
			e.logger.Warnf("like sync: item %s throttled, waiting %s (attempt %d/%d)", itemID, rl.Wait, attempt+1, e.maxAttempts)
			metrics.RetriesTotal.Inc()
			if serr := e.sleep(ctx, rl.Wait); serr != nil {
				return nil, serr
			}

		case errors.Is(err, entity.ErrNetwork), errors.Is(err, entity.ErrServer):
			if attempt == e.maxAttempts-1 {
				return nil, err
			}
			delay := e.baseBackoff << attempt
			e.logger.Warnf("like sync: item %s attempt %d/%d failed (%v), retrying in %s", itemID, attempt+1, e.maxAttempts, err, delay)
			metrics.RetriesTotal.Inc()
			if serr := e.sleep(ctx, delay); serr != nil {
				return nil, serr
			}

		default:
			return nil, err
		}
	}
	return nil, lastErr
}

// SetSleep replaces the backoff sleeper, for tests.
func (e *MutationExecutor) SetSleep(sleep func(ctx context.Context, d time.Duration) error) {
	e.sleep = sleep
}

// sleepContext waits for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
