package sumz

import "errors"

// Sentinel errors for the failure modes of unchecked access and traversal.
// Every panic raised by this package wraps exactly one of these (or, for
// Result.Unwrap on an error payload, the originally captured error), so
// callers can recover and classify with errors.Is.
var (
	// ErrInvalidState indicates an operation that is invalid for the
	// variant currently held: unwrapping a None, taking the value of an
	// Err, taking the error of an Ok, or resetting a consuming traversal.
	ErrInvalidState = errors.New("sumz: invalid state")

	// ErrNullValue indicates an attempt to construct an Ok or Err variant
	// around a nil payload. A Result side is never nil; use Option when
	// absence is meaningful.
	ErrNullValue = errors.New("sumz: nil payload")

	// ErrConcurrentModification indicates a traversal detected structural
	// change in the queue between two steps.
	ErrConcurrentModification = errors.New("sumz: queue modified during traversal")
)
