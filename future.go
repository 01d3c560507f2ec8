package sumz

// Future is a handle to a value still being computed. Go starts the
// computation in its own goroutine; Await blocks until it resolves and may
// be called any number of times from any goroutine.
//
// Future deliberately carries no cancellation or timeout concept - the
// suspension point is the awaited boundary and nothing else. A caller
// composing with cancellable work owns that cancellation; wrap the outcome
// in a Result if the cancellation itself must be observable.
//
// The async combinators below preserve the short-circuit discipline of
// their synchronous counterparts: on the short-circuited side no
// continuation runs and no goroutine is spawned - the combined Future
// resolves immediately.
type Future[T any] struct {
	state *futureState[T]
}

type futureState[T any] struct {
	done  chan struct{}
	value T
}

// Go runs fn in a new goroutine and returns a Future resolving to its
// result.
func Go[T any](fn func() T) Future[T] {
	s := &futureState[T]{done: make(chan struct{})}
	go func() {
		s.value = fn()
		close(s.done)
	}()
	return Future[T]{state: s}
}

// Resolved returns an already-resolved Future. Await never blocks.
func Resolved[T any](value T) Future[T] {
	s := &futureState[T]{done: make(chan struct{}), value: value}
	close(s.done)
	return Future[T]{state: s}
}

// Await blocks until the Future resolves and returns its value.
func (f Future[T]) Await() T {
	<-f.state.done
	return f.state.value
}

// TryAwait returns the value and true when the Future has resolved, or the
// zero value and false without blocking.
func (f Future[T]) TryAwait() (T, bool) {
	select {
	case <-f.state.done:
		return f.state.value, true
	default:
		var zero T
		return zero, false
	}
}

// Done returns a channel closed when the Future resolves, for composing
// with select.
func (f Future[T]) Done() <-chan struct{} {
	return f.state.done
}

// MapFuture transforms the resolved value with fn, in a new goroutine.
func MapFuture[T, U any](f Future[T], fn func(T) U) Future[U] {
	return Go(func() U {
		return fn(f.Await())
	})
}

// MapOptionAsync transforms a present value with an asynchronous fn.
// When o is absent the returned Future resolves immediately and fn is never
// invoked.
func MapOptionAsync[T, U any](o Option[T], fn func(T) Future[U]) Future[Option[U]] {
	if o.IsNone() {
		return Resolved(None[U]())
	}
	return Go(func() Option[U] {
		return Some(fn(o.value).Await())
	})
}

// AndThenOptionAsync chains an asynchronous computation that may itself
// produce nothing. fn is never invoked when o is absent.
func AndThenOptionAsync[T, U any](o Option[T], fn func(T) Future[Option[U]]) Future[Option[U]] {
	if o.IsNone() {
		return Resolved(None[U]())
	}
	return Go(func() Option[U] {
		return fn(o.value).Await()
	})
}

// OrElseOptionAsync recovers absence with an asynchronous supplier.
// The supplier is never invoked when o is present.
func OrElseOptionAsync[T any](o Option[T], supplier func() Future[Option[T]]) Future[Option[T]] {
	if o.IsSome() {
		return Resolved(o)
	}
	return Go(func() Option[T] {
		return supplier().Await()
	})
}

// MapResultAsync transforms a success value with an asynchronous fn, passing
// any error through untouched without invoking fn.
func MapResultAsync[T, U, E any](r Result[T, E], fn func(T) Future[U]) Future[Result[U, E]] {
	if r.IsErr() {
		return Resolved(Result[U, E]{errv: r.errv, trace: r.trace})
	}
	return Go(func() Result[U, E] {
		return Ok[U, E](fn(r.value).Await())
	})
}

// MapErrAsync transforms an error payload with an asynchronous fn, passing
// any success value through untouched without invoking fn.
func MapErrAsync[T, E, F any](r Result[T, E], fn func(E) Future[F]) Future[Result[T, F]] {
	if r.IsOk() {
		return Resolved(Result[T, F]{value: r.value, ok: true})
	}
	return Go(func() Result[T, F] {
		return Err[T, F](fn(r.errv).Await())
	})
}

// AndThenResultAsync chains an asynchronous computation that may itself
// fail. fn is never invoked on Err.
func AndThenResultAsync[T, U, E any](r Result[T, E], fn func(T) Future[Result[U, E]]) Future[Result[U, E]] {
	if r.IsErr() {
		return Resolved(Result[U, E]{errv: r.errv, trace: r.trace})
	}
	return Go(func() Result[U, E] {
		return fn(r.value).Await()
	})
}

// OrElseResultAsync recovers an error with an asynchronous fn, permitting a
// new error type. fn is never invoked on Ok.
func OrElseResultAsync[T, E, F any](r Result[T, E], fn func(E) Future[Result[T, F]]) Future[Result[T, F]] {
	if r.IsOk() {
		return Resolved(Result[T, F]{value: r.value, ok: true})
	}
	return Go(func() Result[T, F] {
		return fn(r.errv).Await()
	})
}

// UnwrapOrElseAsync collapses the Result to a plain Future value, computing
// the fallback asynchronously from the error payload. fn is never invoked
// on Ok.
func UnwrapOrElseAsync[T, E any](r Result[T, E], fn func(E) Future[T]) Future[T] {
	if r.IsOk() {
		return Resolved(r.value)
	}
	return Go(func() T {
		return fn(r.errv).Await()
	})
}

// ThenOption chains a synchronous continuation onto a pending Option
// computation: the in-flight Option is awaited first, then AndThenOption
// applies. Pure sequencing - no reordering or parallelism is introduced.
func ThenOption[T, U any](f Future[Option[T]], fn func(T) Option[U]) Future[Option[U]] {
	return Go(func() Option[U] {
		return AndThenOption(f.Await(), fn)
	})
}

// ThenOptionAsync chains a continuation that is itself pending: the
// in-flight Option is awaited, then the continuation's Future is awaited
// before the combined Future resolves.
func ThenOptionAsync[T, U any](f Future[Option[T]], fn func(T) Future[Option[U]]) Future[Option[U]] {
	return Go(func() Option[U] {
		return AndThenOptionAsync(f.Await(), fn).Await()
	})
}

// ThenResult chains a synchronous continuation onto a pending Result
// computation: the in-flight Result is awaited first, then AndThenResult
// applies.
func ThenResult[T, U, E any](f Future[Result[T, E]], fn func(T) Result[U, E]) Future[Result[U, E]] {
	return Go(func() Result[U, E] {
		return AndThenResult(f.Await(), fn)
	})
}

// ThenResultAsync chains a continuation that is itself pending onto a
// pending Result computation.
func ThenResultAsync[T, U, E any](f Future[Result[T, E]], fn func(T) Future[Result[U, E]]) Future[Result[U, E]] {
	return Go(func() Result[U, E] {
		return AndThenResultAsync(f.Await(), fn).Await()
	})
}
