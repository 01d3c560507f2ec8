// Package sumz provides algebraic sum types for Go - an Option type for
// "value or absence" and a Result type for "value or error" - together with
// a combinator algebra, asynchronous bridging through a Future handle, and a
// stable bucketed priority queue.
//
// # Overview
//
// sumz lets application code handle absence and failure as explicit values
// instead of nil sentinels and sentinel-error control flow. Chains of
// combinators short-circuit on the absent or error side without invoking
// continuations, and unchecked access fails loudly with a classifiable
// sentinel error.
//
// # Core Concepts
//
// Two sum types, each with exactly two variants:
//
//   - Option[T]: Some(value) or None
//   - Result[T, E]: Ok(value) or Err(error)
//
// Both are immutable value types (Option.Take is the single documented
// exception). Combinators that introduce a second type parameter are
// package-level functions - MapOption, AndThenResult, and friends - because
// Go methods cannot declare new type parameters.
//
// # Option
//
// Present-or-absent with lazy defaulting:
//
//	port := sumz.FromPtr(cfg.Port).UnwrapOr(8080)
//
//	display := sumz.MapOption(findUser(id), func(u User) string {
//	    return u.Name
//	})
//
// A Some may wrap a typed-nil reference; that is a present value, distinct
// from None. FromPtr is the boundary where nil pointers become None.
//
// # Result
//
// Success-or-failure with error-side capture. When the error payload
// implements error, Err records the construction call site, so an eventual
// Unwrap panic points at the original failure, not the unwrap:
//
//	res := sumz.AndThenResult(parse(raw), validate)
//	if v, ok := res.TryUnwrap(); ok {
//	    use(v)
//	}
//
// Combine collapses a slice of Results into one, first error wins:
//
//	all := sumz.Combine(batch) // Result[[]T, E]
//
// # Futures
//
// Future[T] is a handle to a value still being computed. The async
// combinators await only when there is something to continue - the
// short-circuited side resolves immediately without spawning a goroutine:
//
//	pending := sumz.Go(fetchUser)                  // Future[Result[User, error]]
//	enriched := sumz.ThenResult(pending, enrich)   // await, then chain
//	res := enriched.Await()
//
// There is no cancellation or timeout concept in the core: the awaited
// boundary is the only suspension point, and a caller composing with
// cancellable work owns that cancellation.
//
// # Priority Queue
//
// PriorityQueue[T, P] buckets items by a derived priority and serves each
// bucket in strict insertion order (stable). Push/Pop/Clear/Append serialize
// on one mutex; traversals detect concurrent mutation through version
// counters and fail fast with ErrConcurrentModification:
//
//	q := sumz.NewMaxQueue("jobs", func(j Job) int { return j.Urgency })
//	q.Push(a)
//	next := q.Peek() // Option[Job]
//
//	it := q.Iter() // non-consuming; invalidated by push and pop
//	d := q.Drain() // consuming; pops each step, tolerates other pops
//
// # Retry and Backoff
//
// Retry and Backoff drive a Result-producing operation to success, the
// latter with exponential, clock-driven delays:
//
//	call := sumz.NewBackoff("flaky-api", 5, time.Second, op)
//	res := call.Do(ctx)
//
// # Error Handling
//
// Three sentinels classify every failure: ErrInvalidState (unwrapping the
// wrong variant), ErrNullValue (nil payload at Result construction), and
// ErrConcurrentModification (traversal interference). Panics raised by
// unchecked access wrap a sentinel - or, for Result.Unwrap on an error
// payload, a *TraceError carrying the original error and its capture-time
// trace - so recover plus errors.Is classifies them.
//
// # Observability
//
// PriorityQueue, Retry, and Backoff expose metricz registries, tracez spans
// on bulk operations, and typed hookz events with OnXxx registrars. Clocks
// are pluggable via clockz for deterministic tests. The sum types themselves
// carry no observability - they are plain values.
package sumz
