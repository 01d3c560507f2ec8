package sumz

import "fmt"

// Option represents an optional value: Some wraps a present value of type T,
// None marks absence. Option is the library's answer to "value or nothing"
// without nil sentinels leaking through signatures.
//
// Option is a plain value type - copying is cheap and no operation except
// Take mutates the receiver. A Some may legitimately wrap a typed-nil
// reference; that is a present value, distinct from None. Use FromPtr at the
// boundary where a nil pointer should become None.
//
// Operations that introduce a second type parameter (Map, AndThen, And) are
// package-level functions because Go methods cannot declare new type
// parameters.
//
// Example:
//
//	port := sumz.FromPtr(cfg.Port).UnwrapOr(8080)
//
//	name := sumz.MapOption(lookup(id), func(u User) string {
//	    return u.Name
//	})
type Option[T any] struct {
	value   T
	present bool
}

// Some wraps a value in a present Option.
func Some[T any](value T) Option[T] {
	return Option[T]{value: value, present: true}
}

// None returns the absent Option for type T.
func None[T any]() Option[T] {
	return Option[T]{}
}

// FromPtr converts a pointer to an Option, mapping nil to None and anything
// else to Some of the pointed-to value. This is the explicit form of the
// "nil converts to absent" boundary convention.
func FromPtr[T any](p *T) Option[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool {
	return o.present
}

// IsNone reports whether the Option is absent.
func (o Option[T]) IsNone() bool {
	return !o.present
}

// Unwrap returns the contained value.
// It panics wrapping ErrInvalidState when the Option is None.
func (o Option[T]) Unwrap() T {
	if !o.present {
		panic(fmt.Errorf("%w: unwrap of absent Option[%T]", ErrInvalidState, o.value))
	}
	return o.value
}

// Expect returns the contained value.
// It panics with the supplied message, wrapping ErrInvalidState, when absent.
func (o Option[T]) Expect(msg string) T {
	if !o.present {
		panic(fmt.Errorf("%w: %s", ErrInvalidState, msg))
	}
	return o.value
}

// TryUnwrap returns the contained value and true, or the zero value and
// false when absent. This is the non-panicking accessor.
func (o Option[T]) TryUnwrap() (T, bool) {
	return o.value, o.present
}

// UnwrapOr returns the contained value, or def when absent.
// The default is evaluated eagerly by the caller; use UnwrapOrElse when
// computing it is expensive.
func (o Option[T]) UnwrapOr(def T) T {
	if o.present {
		return o.value
	}
	return def
}

// UnwrapOrElse returns the contained value, or the supplier's result when
// absent. The supplier is never invoked when a value is present.
func (o Option[T]) UnwrapOrElse(supplier func() T) T {
	if o.present {
		return o.value
	}
	return supplier()
}

// Or returns o when present, otherwise other.
func (o Option[T]) Or(other Option[T]) Option[T] {
	if o.present {
		return o
	}
	return other
}

// OrElse returns o when present, otherwise the supplier's result.
// The supplier is never invoked when a value is present.
func (o Option[T]) OrElse(supplier func() Option[T]) Option[T] {
	if o.present {
		return o
	}
	return supplier()
}

// Take clears the receiver to None and returns what it previously held.
// This is the one mutating operation on Option, for one-shot consumption
// scenarios where a value must not be observable twice.
func (o *Option[T]) Take() Option[T] {
	taken := *o
	*o = None[T]()
	return taken
}

// Ptr returns a pointer to the contained value, or nil when absent.
// The inverse of FromPtr. The pointer refers to a copy; writes through it do
// not affect the Option.
func (o Option[T]) Ptr() *T {
	if !o.present {
		return nil
	}
	v := o.value
	return &v
}

// String implements fmt.Stringer.
func (o Option[T]) String() string {
	if !o.present {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// MapOption transforms the contained value with fn. None passes through
// untouched as None of the target type; fn is never invoked when absent.
func MapOption[T, U any](o Option[T], fn func(T) U) Option[U] {
	if !o.present {
		return None[U]()
	}
	return Some(fn(o.value))
}

// MapOptionOr transforms the contained value with fn, collapsing to a plain
// value, or returns def when absent.
func MapOptionOr[T, U any](o Option[T], def U, fn func(T) U) U {
	if !o.present {
		return def
	}
	return fn(o.value)
}

// MapOptionOrElse is the lazy-default form of MapOptionOr. Exactly one of
// supplier and fn is invoked.
func MapOptionOrElse[T, U any](o Option[T], supplier func() U, fn func(T) U) U {
	if !o.present {
		return supplier()
	}
	return fn(o.value)
}

// AndOption returns other when o is present, otherwise None of the target
// type. The caller has already evaluated other; use AndThenOption for lazy
// chaining.
func AndOption[T, U any](o Option[T], other Option[U]) Option[U] {
	if !o.present {
		return None[U]()
	}
	return other
}

// AndThenOption chains a computation that itself may produce nothing.
// fn is never invoked when o is absent.
func AndThenOption[T, U any](o Option[T], fn func(T) Option[U]) Option[U] {
	if !o.present {
		return None[U]()
	}
	return fn(o.value)
}
