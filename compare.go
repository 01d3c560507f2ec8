package sumz

import "hash/maphash"

// Structural equality and hashing for the sum types. Both follow the same
// law: two values are equal iff the same variant is active on both sides and
// the wrapped payloads are equal; a value on one side never equals an error
// or absence on the other. Constrained to comparable payloads - Go cannot
// compare arbitrary types.

// OptionEqual reports whether two Options are structurally equal: both
// absent, or both present with equal wrapped values.
func OptionEqual[T comparable](a, b Option[T]) bool {
	if a.present != b.present {
		return false
	}
	if !a.present {
		return true
	}
	return a.value == b.value
}

// ResultEqual reports whether two Results are structurally equal, comparing
// only the active side.
func ResultEqual[T, E comparable](a, b Result[T, E]) bool {
	if a.ok != b.ok {
		return false
	}
	if a.ok {
		return a.value == b.value
	}
	return a.errv == b.errv
}

// HashOption hashes an Option under the given seed: absent hashes to 0, a
// present nil reference to all-ones, and any other present value to the
// wrapped value's hash. Equal Options hash equally under the same seed.
func HashOption[T comparable](seed maphash.Seed, o Option[T]) uint64 {
	if !o.present {
		return 0
	}
	if isNilRef(o.value) {
		return ^uint64(0)
	}
	return maphash.Comparable(seed, o.value)
}

// HashResult hashes a Result under the given seed, hashing only the active
// side. The Ok and Err sides are domain-separated so Ok(v) and Err(v) of
// coinciding payload types do not collide trivially.
func HashResult[T, E comparable](seed maphash.Seed, r Result[T, E]) uint64 {
	if r.ok {
		return maphash.Comparable(seed, r.value)
	}
	return ^maphash.Comparable(seed, r.errv)
}
