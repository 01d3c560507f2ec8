package sumz

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
)

// Backoff re-invokes an operation producing a Result with exponential delay
// between attempts, starting at baseDelay and doubling after each failure.
// The wait is driven by a clockz.Clock so tests can use a fake clock, and
// can be aborted by context cancellation, in which case the last Err is
// returned immediately.
//
// With baseDelay=1s and maxAttempts=5 the delays are 1s, 2s, 4s, 8s.
//
// Example:
//
//	call := sumz.NewBackoff("flaky-api", 5, time.Second, op)
//	res := call.Do(ctx)
type Backoff[T, E any] struct {
	op          func(context.Context) Result[T, E]
	name        Name
	maxAttempts int
	baseDelay   time.Duration
	clock       clockz.Clock
	mu          sync.RWMutex

	metrics *metricz.Registry
	hooks   *hookz.Hooks[RetryEvent]
}

// NewBackoff creates a Backoff around op with the given attempt limit and
// base delay.
func NewBackoff[T, E any](name Name, maxAttempts int, baseDelay time.Duration, op func(context.Context) Result[T, E]) *Backoff[T, E] {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	metrics := metricz.New()
	metrics.Counter(RetryAttemptsTotal)
	metrics.Counter(RetrySuccessesTotal)
	metrics.Counter(RetryExhaustedTotal)

	return &Backoff[T, E]{
		op:          op,
		name:        name,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		clock:       clockz.RealClock,
		metrics:     metrics,
		hooks:       hookz.New[RetryEvent](),
	}
}

// Do runs the operation until it succeeds, attempts are exhausted, or the
// context is canceled during a wait, returning the last Result either way.
func (b *Backoff[T, E]) Do(ctx context.Context) Result[T, E] {
	b.mu.RLock()
	op := b.op
	maxAttempts := b.maxAttempts
	delay := b.baseDelay
	clock := b.getClock()
	b.mu.RUnlock()

	var last Result[T, E]
	for i := 0; i < maxAttempts; i++ {
		b.metrics.Counter(RetryAttemptsTotal).Inc()

		last = op(ctx)
		if last.IsOk() {
			b.metrics.Counter(RetrySuccessesTotal).Inc()
			return last
		}

		_ = b.hooks.Emit(ctx, RetryEventAttemptFail, RetryEvent{ //nolint:errcheck
			Name:        b.name,
			Attempt:     i + 1,
			MaxAttempts: maxAttempts,
			Err:         fmt.Sprint(last.UnwrapErr()),
			Timestamp:   clock.Now(),
		})

		// No wait after the final attempt.
		if i < maxAttempts-1 {
			_ = b.hooks.Emit(ctx, RetryEventWaiting, RetryEvent{ //nolint:errcheck
				Name:        b.name,
				Attempt:     i + 1,
				MaxAttempts: maxAttempts,
				Delay:       delay,
				Timestamp:   clock.Now(),
			})

			select {
			case <-clock.After(delay):
				delay *= 2
			case <-ctx.Done():
				return last
			}
		}
	}

	b.metrics.Counter(RetryExhaustedTotal).Inc()
	_ = b.hooks.Emit(ctx, RetryEventExhausted, RetryEvent{ //nolint:errcheck
		Name:        b.name,
		Attempt:     maxAttempts,
		MaxAttempts: maxAttempts,
		Err:         fmt.Sprint(last.UnwrapErr()),
		Timestamp:   clock.Now(),
	})
	return last
}

// SetMaxAttempts updates the maximum number of attempts.
func (b *Backoff[T, E]) SetMaxAttempts(n int) *Backoff[T, E] {
	if n < 1 {
		n = 1
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maxAttempts = n
	return b
}

// SetBaseDelay updates the base delay duration.
func (b *Backoff[T, E]) SetBaseDelay(d time.Duration) *Backoff[T, E] {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.baseDelay = d
	return b
}

// GetMaxAttempts returns the current attempt limit.
func (b *Backoff[T, E]) GetMaxAttempts() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.maxAttempts
}

// GetBaseDelay returns the current base delay.
func (b *Backoff[T, E]) GetBaseDelay() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.baseDelay
}

// WithClock sets a custom clock for testing.
func (b *Backoff[T, E]) WithClock(clock clockz.Clock) *Backoff[T, E] {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clock = clock
	return b
}

// getClock returns the clock to use.
func (b *Backoff[T, E]) getClock() clockz.Clock {
	if b.clock == nil {
		return clockz.RealClock
	}
	return b.clock
}

// Name returns the name of this backoff instance.
func (b *Backoff[T, E]) Name() Name {
	return b.name
}

// Metrics returns the metrics registry for this backoff instance.
func (b *Backoff[T, E]) Metrics() *metricz.Registry {
	return b.metrics
}

// Close gracefully shuts down the hook dispatcher.
func (b *Backoff[T, E]) Close() error {
	b.hooks.Close()
	return nil
}

// OnAttemptFail registers a handler called after each failed attempt.
func (b *Backoff[T, E]) OnAttemptFail(handler func(context.Context, RetryEvent) error) error {
	_, err := b.hooks.Hook(RetryEventAttemptFail, handler)
	return err
}

// OnWaiting registers a handler called before each backoff wait.
func (b *Backoff[T, E]) OnWaiting(handler func(context.Context, RetryEvent) error) error {
	_, err := b.hooks.Hook(RetryEventWaiting, handler)
	return err
}

// OnExhausted registers a handler called when all attempts fail.
func (b *Backoff[T, E]) OnExhausted(handler func(context.Context, RetryEvent) error) error {
	_, err := b.hooks.Hook(RetryEventExhausted, handler)
	return err
}
