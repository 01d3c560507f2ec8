package testing

import (
	"context"
	"errors"
	"testing"

	"github.com/zoobzio/sumz"
)

func TestAssertSome(t *testing.T) {
	AssertSome(t, sumz.Some(42), 42)
	AssertSome(t, sumz.Some("hello"), "hello")
}

func TestAssertNone(t *testing.T) {
	AssertNone(t, sumz.None[int]())

	// Take leaves the option absent.
	o := sumz.Some(1)
	o.Take()
	AssertNone(t, o)
}

func TestAssertOk(t *testing.T) {
	AssertOk(t, sumz.Ok[int, string](7), 7)
	AssertOk(t, sumz.Ok[string, error]("done"), "done")
}

func TestAssertErr(t *testing.T) {
	AssertErr(t, sumz.Err[int, string]("boom"), "boom")
	AssertErr(t, sumz.Err[string, int](404), 404)
}

func TestCallCounter(t *testing.T) {
	t.Run("Supply Counts Invocations", func(t *testing.T) {
		count := NewCallCounter()
		supplier := Supply(count, func() int { return 9 })

		// Not invoked on the present side.
		sumz.Some(1).UnwrapOrElse(supplier)
		AssertCalls(t, count, 0)

		if got := sumz.None[int]().UnwrapOrElse(supplier); got != 9 {
			t.Errorf("expected fallback 9, got %d", got)
		}
		AssertCalls(t, count, 1)
	})

	t.Run("Wrap Counts Invocations", func(t *testing.T) {
		count := NewCallCounter()
		double := Wrap(count, func(n int) int { return n * 2 })

		got := sumz.MapOption(sumz.Some(21), double)
		AssertSome(t, got, 42)
		AssertCalls(t, count, 1)

		sumz.MapOption(sumz.None[int](), double)
		AssertCalls(t, count, 1)
	})

	t.Run("Wrap Proves Result Short-Circuit", func(t *testing.T) {
		count := NewCallCounter()
		next := Wrap(count, func(n int) sumz.Result[int, string] {
			return sumz.Ok[int, string](n + 1)
		})

		sumz.AndThenResult(sumz.Err[int, string]("upstream"), next)
		AssertCalls(t, count, 0)

		got := sumz.AndThenResult(sumz.Ok[int, string](1), next)
		AssertOk(t, got, 2)
		AssertCalls(t, count, 1)
	})
}

func TestFlakyOp(t *testing.T) {
	t.Run("Fails Then Succeeds", func(t *testing.T) {
		warming := errors.New("warming up")
		op := FlakyOp(2, "ready", warming)
		ctx := context.Background()

		AssertErr(t, op(ctx), warming)
		if !op(ctx).IsErr() {
			t.Fatal("expected second call to fail")
		}
		AssertOk(t, op(ctx), "ready")
		AssertOk(t, op(ctx), "ready")
	})

	t.Run("Drives Retry", func(t *testing.T) {
		retry := sumz.NewRetry("flaky", 3, FlakyOp(2, 10, errors.New("temporary")))
		defer retry.Close()

		AssertOk(t, retry.Do(context.Background()), 10)
	})

	t.Run("Exhausts Retry", func(t *testing.T) {
		boom := errors.New("boom")
		retry := sumz.NewRetry("doomed", 2, FlakyOp(5, 0, boom))
		defer retry.Close()

		res := retry.Do(context.Background())
		if !res.IsErr() || !errors.Is(res.UnwrapErr(), boom) {
			t.Errorf("expected Err(boom), got %v", res)
		}
	})
}
