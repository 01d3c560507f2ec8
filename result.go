package sumz

import (
	"fmt"
	"reflect"
)

// Result represents a fallible outcome: Ok wraps a success value of type T,
// Err wraps an error payload of type E. Exactly one side is active.
//
// Unlike Option, nil is never a legal payload on either side - a nil value
// or nil error at construction is a programmer error and panics wrapping
// ErrNullValue. When absence is meaningful, use Option.
//
// When E is (or implements) error, Err captures a Trace at construction so
// that an eventual Unwrap panic carries the original failure site. See
// Trace and TraceError.
//
// Like Option, operations that introduce new type parameters are
// package-level functions (MapResult, AndThenResult, ...).
//
// Example:
//
//	res := sumz.AndThenResult(parse(raw), validate)
//	if v, ok := res.TryUnwrap(); ok {
//	    use(v)
//	}
type Result[T, E any] struct {
	value T
	errv  E
	trace *Trace
	ok    bool
}

// Ok wraps a success value. It panics wrapping ErrNullValue when value is a
// nil reference.
func Ok[T, E any](value T) Result[T, E] {
	if isNilRef(value) {
		panic(fmt.Errorf("%w: Ok called with nil %T", ErrNullValue, value))
	}
	return Result[T, E]{value: value, ok: true}
}

// Err wraps an error payload. It panics wrapping ErrNullValue when err is a
// nil reference. When the payload implements error, the current call site is
// captured so a later Unwrap can re-raise with the original context.
func Err[T, E any](err E) Result[T, E] {
	if isNilRef(err) {
		panic(fmt.Errorf("%w: Err called with nil %T", ErrNullValue, err))
	}
	r := Result[T, E]{errv: err}
	if _, isErr := any(err).(error); isErr {
		r.trace = captureTrace(1)
	}
	return r
}

// isNilRef reports whether v is a nil reference of a pointer-shaped kind.
// Value kinds (ints, structs, ...) are never nil.
func isNilRef(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// IsOk reports whether the Result holds a success value.
func (r Result[T, E]) IsOk() bool {
	return r.ok
}

// IsErr reports whether the Result holds an error payload.
func (r Result[T, E]) IsErr() bool {
	return !r.ok
}

// Ok projects the success side to an Option, discarding any error.
func (r Result[T, E]) Ok() Option[T] {
	if !r.ok {
		return None[T]()
	}
	return Some(r.value)
}

// Err projects the error side to an Option, discarding any value.
func (r Result[T, E]) Err() Option[E] {
	if r.ok {
		return None[E]()
	}
	return Some(r.errv)
}

// Unwrap returns the success value. On Err it panics: when the payload is an
// error, the panic value is a *TraceError wrapping the original error and
// its construction-time trace; otherwise the panic wraps ErrInvalidState
// with the stringified payload.
func (r Result[T, E]) Unwrap() T {
	if r.ok {
		return r.value
	}
	if err, isErr := any(r.errv).(error); isErr {
		panic(&TraceError{Err: err, Trace: r.trace})
	}
	panic(fmt.Errorf("%w: unwrap of Err result: %v", ErrInvalidState, r.errv))
}

// Expect returns the success value. On Err it panics with the caller's
// message: the original error becomes the cause when the payload is an
// error, otherwise the payload is formatted into the message.
func (r Result[T, E]) Expect(msg string) T {
	if r.ok {
		return r.value
	}
	if err, isErr := any(r.errv).(error); isErr {
		panic(fmt.Errorf("%s: %w", msg, err))
	}
	panic(fmt.Errorf("%w: %s: %v", ErrInvalidState, msg, r.errv))
}

// UnwrapErr returns the error payload.
// It panics wrapping ErrInvalidState when called on Ok.
func (r Result[T, E]) UnwrapErr() E {
	if r.ok {
		panic(fmt.Errorf("%w: unwrap of error side on Ok result: %v", ErrInvalidState, r.value))
	}
	return r.errv
}

// ExpectErr returns the error payload.
// It panics with the supplied message, wrapping ErrInvalidState, on Ok.
func (r Result[T, E]) ExpectErr(msg string) E {
	if r.ok {
		panic(fmt.Errorf("%w: %s: %v", ErrInvalidState, msg, r.value))
	}
	return r.errv
}

// TryUnwrap returns the success value and true, or the zero value and false
// on Err. This is the non-panicking accessor.
func (r Result[T, E]) TryUnwrap() (T, bool) {
	return r.value, r.ok
}

// Unpack deconstructs the Result into its (value, error) pair. Exactly one
// side is non-zero: Ok yields (value, zero E), Err yields (zero T, error).
func (r Result[T, E]) Unpack() (T, E) {
	return r.value, r.errv
}

// UnwrapOr returns the success value, or def on Err.
func (r Result[T, E]) UnwrapOr(def T) T {
	if r.ok {
		return r.value
	}
	return def
}

// UnwrapOrElse returns the success value, or fn applied to the error payload
// on Err. fn is never invoked on Ok.
func (r Result[T, E]) UnwrapOrElse(fn func(E) T) T {
	if r.ok {
		return r.value
	}
	return fn(r.errv)
}

// String implements fmt.Stringer.
func (r Result[T, E]) String() string {
	if r.ok {
		return fmt.Sprintf("Ok(%v)", r.value)
	}
	return fmt.Sprintf("Err(%v)", r.errv)
}

// MapResult transforms the success value with fn, passing any error through
// untouched. fn is never invoked on Err.
func MapResult[T, U, E any](r Result[T, E], fn func(T) U) Result[U, E] {
	if !r.ok {
		return Result[U, E]{errv: r.errv, trace: r.trace}
	}
	return Ok[U, E](fn(r.value))
}

// MapErr transforms the error payload with fn, passing any success value
// through untouched. fn is never invoked on Ok.
func MapErr[T, E, F any](r Result[T, E], fn func(E) F) Result[T, F] {
	if r.ok {
		return Result[T, F]{value: r.value, ok: true}
	}
	return Err[T, F](fn(r.errv))
}

// AndResult discards r's success value and returns other when r is Ok,
// otherwise r's error retyped. The caller has already evaluated other; use
// AndThenResult for lazy chaining.
func AndResult[T, U, E any](r Result[T, E], other Result[U, E]) Result[U, E] {
	if !r.ok {
		return Result[U, E]{errv: r.errv, trace: r.trace}
	}
	return other
}

// AndThenResult chains a computation that may itself fail. fn is never
// invoked on Err; the error short-circuits through untouched.
func AndThenResult[T, U, E any](r Result[T, E], fn func(T) Result[U, E]) Result[U, E] {
	if !r.ok {
		return Result[U, E]{errv: r.errv, trace: r.trace}
	}
	return fn(r.value)
}

// OrResult returns r when Ok, otherwise other. The symmetric chain on the
// error side, permitting a new error type.
func OrResult[T, E, F any](r Result[T, E], other Result[T, F]) Result[T, F] {
	if r.ok {
		return Result[T, F]{value: r.value, ok: true}
	}
	return other
}

// OrElseResult returns r when Ok, otherwise fn applied to the error payload.
// fn is never invoked on Ok.
func OrElseResult[T, E, F any](r Result[T, E], fn func(E) Result[T, F]) Result[T, F] {
	if r.ok {
		return Result[T, F]{value: r.value, ok: true}
	}
	return fn(r.errv)
}

// Combine collapses a sequence of Results into one: Ok wrapping all values
// in their original order when every input is Ok, otherwise the first Err
// encountered, short-circuiting the remainder of the scan.
func Combine[T, E any](results []Result[T, E]) Result[[]T, E] {
	values := make([]T, 0, len(results))
	for _, r := range results {
		if !r.ok {
			return Result[[]T, E]{errv: r.errv, trace: r.trace}
		}
		values = append(values, r.value)
	}
	return Result[[]T, E]{value: values, ok: true}
}
