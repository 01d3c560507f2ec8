// Package testing provides test utilities and helpers for sumz-based code.
//
// This package includes comparison helpers for Option and Result, a
// call-counting probe for verifying the laziness contracts (suppliers and
// continuations must not run on the short-circuited side), and a
// configurable flaky operation for driving Retry and Backoff.
//
// Example usage:
//
//	func TestLookup(t *testing.T) {
//		res := lookup("alice")
//		sumztesting.AssertOk(t, res, User{Name: "alice"})
//
//		count := sumztesting.NewCallCounter()
//		opt.UnwrapOrElse(sumztesting.Supply(count, func() User { return User{} }))
//		sumztesting.AssertCalls(t, count, 0)
//	}
package testing

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/zoobzio/sumz"
)

// AssertSome fails the test unless o is present and holds want.
func AssertSome[T comparable](t *testing.T, o sumz.Option[T], want T) {
	t.Helper()
	got, ok := o.TryUnwrap()
	if !ok {
		t.Fatalf("expected Some(%v), got None", want)
	}
	if got != want {
		t.Fatalf("expected Some(%v), got Some(%v)", want, got)
	}
}

// AssertNone fails the test unless o is absent.
func AssertNone[T any](t *testing.T, o sumz.Option[T]) {
	t.Helper()
	if v, ok := o.TryUnwrap(); ok {
		t.Fatalf("expected None, got Some(%v)", v)
	}
}

// AssertOk fails the test unless r is Ok and holds want.
func AssertOk[T comparable, E any](t *testing.T, r sumz.Result[T, E], want T) {
	t.Helper()
	got, ok := r.TryUnwrap()
	if !ok {
		t.Fatalf("expected Ok(%v), got %v", want, r)
	}
	if got != want {
		t.Fatalf("expected Ok(%v), got Ok(%v)", want, got)
	}
}

// AssertErr fails the test unless r is Err and holds want.
func AssertErr[T any, E comparable](t *testing.T, r sumz.Result[T, E], want E) {
	t.Helper()
	if r.IsOk() {
		t.Fatalf("expected Err(%v), got %v", want, r)
	}
	if got := r.UnwrapErr(); got != want {
		t.Fatalf("expected Err(%v), got Err(%v)", want, got)
	}
}

// CallCounter counts invocations of the functions it wraps. It proves the
// no-call laziness properties: wrap a supplier or continuation, run the
// chain, then assert the count. Safe for concurrent use.
type CallCounter struct {
	calls int64
}

// NewCallCounter creates a CallCounter.
func NewCallCounter() *CallCounter {
	return &CallCounter{}
}

// Calls returns the number of wrapped invocations so far.
func (c *CallCounter) Calls() int {
	return int(atomic.LoadInt64(&c.calls))
}

// Supply returns a supplier that counts its invocations before delegating.
func Supply[T any](c *CallCounter, fn func() T) func() T {
	return func() T {
		atomic.AddInt64(&c.calls, 1)
		return fn()
	}
}

// Wrap returns a continuation that counts its invocations before
// delegating.
func Wrap[T, U any](c *CallCounter, fn func(T) U) func(T) U {
	return func(v T) U {
		atomic.AddInt64(&c.calls, 1)
		return fn(v)
	}
}

// AssertCalls fails the test unless the counter saw exactly want calls.
func AssertCalls(t *testing.T, c *CallCounter, want int) {
	t.Helper()
	if got := c.Calls(); got != want {
		t.Fatalf("expected %d calls, got %d", want, got)
	}
}

// FlakyOp returns an operation that fails with err the first failures times
// it is invoked and succeeds with value thereafter. It drives Retry and
// Backoff tests deterministically.
func FlakyOp[T any](failures int, value T, err error) func(context.Context) sumz.Result[T, error] {
	var calls int64
	return func(context.Context) sumz.Result[T, error] {
		n := atomic.AddInt64(&calls, 1)
		if n <= int64(failures) {
			return sumz.Err[T, error](err)
		}
		return sumz.Ok[T, error](value)
	}
}
