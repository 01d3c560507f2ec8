package sumz

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
)

// Metric keys for Retry and Backoff observability.
const (
	RetryAttemptsTotal  = metricz.Key("retry.attempts.total")
	RetrySuccessesTotal = metricz.Key("retry.successes.total")
	RetryExhaustedTotal = metricz.Key("retry.exhausted.total")
)

// Hook event keys for Retry and Backoff.
const (
	RetryEventAttemptFail = hookz.Key("retry.attempt-fail")
	RetryEventExhausted   = hookz.Key("retry.exhausted")
	RetryEventWaiting     = hookz.Key("retry.waiting")
)

// RetryEvent describes one failed attempt of a retried operation.
type RetryEvent struct {
	Name        Name          // Retry instance name
	Attempt     int           // 1-based attempt number
	MaxAttempts int           // Configured attempt limit
	Err         string        // Stringified error payload
	Delay       time.Duration // Wait before the next attempt (Backoff only)
	Timestamp   time.Time     // When the event occurred
}

// Retry re-invokes an operation producing a Result until it is Ok, up to
// maxAttempts times, with no delay between attempts. The final attempt's
// Err is returned when all attempts fail. Context cancellation is checked
// between attempts so a canceled caller stops retrying immediately; the
// operation itself decides whether to observe ctx.
//
// Retry is a consumer of the Result contract, not new core semantics: it is
// the natural driver for operations like network calls wrapped as Results.
//
// Example:
//
//	fetch := sumz.NewRetry("fetch-user", 3, func(ctx context.Context) sumz.Result[User, error] {
//	    return userFromAPI(ctx, id)
//	})
//	res := fetch.Do(ctx)
//
// For delays between attempts, use Backoff.
type Retry[T, E any] struct {
	op          func(context.Context) Result[T, E]
	name        Name
	maxAttempts int
	mu          sync.RWMutex

	metrics *metricz.Registry
	hooks   *hookz.Hooks[RetryEvent]
}

// NewRetry creates a Retry around op with the given attempt limit.
func NewRetry[T, E any](name Name, maxAttempts int, op func(context.Context) Result[T, E]) *Retry[T, E] {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	metrics := metricz.New()
	metrics.Counter(RetryAttemptsTotal)
	metrics.Counter(RetrySuccessesTotal)
	metrics.Counter(RetryExhaustedTotal)

	return &Retry[T, E]{
		op:          op,
		name:        name,
		maxAttempts: maxAttempts,
		metrics:     metrics,
		hooks:       hookz.New[RetryEvent](),
	}
}

// Do runs the operation until it succeeds or attempts are exhausted,
// returning the last Result either way.
func (r *Retry[T, E]) Do(ctx context.Context) Result[T, E] {
	r.mu.RLock()
	op := r.op
	maxAttempts := r.maxAttempts
	r.mu.RUnlock()

	var last Result[T, E]
	for i := 0; i < maxAttempts; i++ {
		r.metrics.Counter(RetryAttemptsTotal).Inc()

		last = op(ctx)
		if last.IsOk() {
			r.metrics.Counter(RetrySuccessesTotal).Inc()
			return last
		}

		_ = r.hooks.Emit(ctx, RetryEventAttemptFail, RetryEvent{ //nolint:errcheck
			Name:        r.name,
			Attempt:     i + 1,
			MaxAttempts: maxAttempts,
			Err:         fmt.Sprint(last.UnwrapErr()),
			Timestamp:   time.Now(),
		})

		if ctx.Err() != nil {
			return last
		}
	}

	r.metrics.Counter(RetryExhaustedTotal).Inc()
	_ = r.hooks.Emit(ctx, RetryEventExhausted, RetryEvent{ //nolint:errcheck
		Name:        r.name,
		Attempt:     maxAttempts,
		MaxAttempts: maxAttempts,
		Err:         fmt.Sprint(last.UnwrapErr()),
		Timestamp:   time.Now(),
	})
	return last
}

// SetMaxAttempts updates the maximum number of attempts.
func (r *Retry[T, E]) SetMaxAttempts(n int) *Retry[T, E] {
	if n < 1 {
		n = 1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maxAttempts = n
	return r
}

// GetMaxAttempts returns the current attempt limit.
func (r *Retry[T, E]) GetMaxAttempts() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.maxAttempts
}

// Name returns the name of this retry instance.
func (r *Retry[T, E]) Name() Name {
	return r.name
}

// Metrics returns the metrics registry for this retry instance.
func (r *Retry[T, E]) Metrics() *metricz.Registry {
	return r.metrics
}

// Close gracefully shuts down the hook dispatcher.
func (r *Retry[T, E]) Close() error {
	r.hooks.Close()
	return nil
}

// OnAttemptFail registers a handler called after each failed attempt.
func (r *Retry[T, E]) OnAttemptFail(handler func(context.Context, RetryEvent) error) error {
	_, err := r.hooks.Hook(RetryEventAttemptFail, handler)
	return err
}

// OnExhausted registers a handler called when all attempts fail.
func (r *Retry[T, E]) OnExhausted(handler func(context.Context, RetryEvent) error) error {
	_, err := r.hooks.Hook(RetryEventExhausted, handler)
	return err
}
