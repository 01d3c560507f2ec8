package sumz

import (
	"errors"
	"strings"
	"testing"
)

// mustPanicWith runs fn and fails unless it panics with an error wrapping
// target.
func mustPanicWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic, got none")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected error panic value, got %T: %v", r, r)
		}
		if !errors.Is(err, target) {
			t.Fatalf("expected panic wrapping %v, got %v", target, err)
		}
	}()
	fn()
}

func TestOption_Predicates(t *testing.T) {
	some := Some(42)
	none := None[int]()

	if !some.IsSome() || some.IsNone() {
		t.Error("Some should report IsSome and not IsNone")
	}
	if !none.IsNone() || none.IsSome() {
		t.Error("None should report IsNone and not IsSome")
	}
}

func TestOption_Unwrap(t *testing.T) {
	if got := Some(42).Unwrap(); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}

	mustPanicWith(t, ErrInvalidState, func() {
		None[int]().Unwrap()
	})
}

func TestOption_UnwrapNamesType(t *testing.T) {
	defer func() {
		err, _ := recover().(error)
		if err == nil {
			t.Fatal("expected panic")
		}
		if !strings.Contains(err.Error(), "int") {
			t.Errorf("expected message to name the absent type, got %q", err.Error())
		}
	}()
	None[int]().Unwrap()
}

func TestOption_Expect(t *testing.T) {
	if got := Some("v").Expect("should be present"); got != "v" {
		t.Errorf("expected v, got %q", got)
	}

	defer func() {
		err, _ := recover().(error)
		if err == nil {
			t.Fatal("expected panic")
		}
		if !errors.Is(err, ErrInvalidState) {
			t.Errorf("expected ErrInvalidState, got %v", err)
		}
		if !strings.Contains(err.Error(), "config missing") {
			t.Errorf("expected caller message in %q", err.Error())
		}
	}()
	None[string]().Expect("config missing")
}

func TestOption_TryUnwrap(t *testing.T) {
	if v, ok := Some(7).TryUnwrap(); !ok || v != 7 {
		t.Errorf("expected (7, true), got (%d, %t)", v, ok)
	}
	if v, ok := None[int]().TryUnwrap(); ok || v != 0 {
		t.Errorf("expected (0, false), got (%d, %t)", v, ok)
	}
}

func TestOption_UnwrapOr(t *testing.T) {
	if got := Some(1).UnwrapOr(9); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := None[int]().UnwrapOr(9); got != 9 {
		t.Errorf("expected 9, got %d", got)
	}
}

func TestOption_UnwrapOrElse_Laziness(t *testing.T) {
	calls := 0
	supplier := func() int {
		calls++
		return 9
	}

	if got := Some(1).UnwrapOrElse(supplier); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if calls != 0 {
		t.Errorf("supplier must not run when present, ran %d times", calls)
	}

	if got := None[int]().UnwrapOrElse(supplier); got != 9 {
		t.Errorf("expected 9, got %d", got)
	}
	if calls != 1 {
		t.Errorf("supplier must run exactly once when absent, ran %d times", calls)
	}
}

func TestOption_FromPtr(t *testing.T) {
	v := 5
	if got := FromPtr(&v); !got.IsSome() || got.Unwrap() != 5 {
		t.Errorf("expected Some(5), got %v", got)
	}
	if got := FromPtr[int](nil); !got.IsNone() {
		t.Errorf("expected None, got %v", got)
	}
}

func TestOption_SomeNilPointerIsPresent(t *testing.T) {
	// A present typed-nil is not the same thing as None.
	var p *int
	o := Some(p)

	if !o.IsSome() {
		t.Fatal("Some(nil pointer) must be present")
	}
	if got := o.Unwrap(); got != nil {
		t.Errorf("expected nil pointer back, got %v", got)
	}
}

func TestOption_Map(t *testing.T) {
	double := func(n int) int { return n * 2 }

	if got := MapOption(Some(21), double); got.Unwrap() != 42 {
		t.Errorf("expected Some(42), got %v", got)
	}

	calls := 0
	got := MapOption(None[int](), func(n int) int {
		calls++
		return n
	})
	if !got.IsNone() {
		t.Errorf("expected None, got %v", got)
	}
	if calls != 0 {
		t.Errorf("fn must not run on None, ran %d times", calls)
	}
}

func TestOption_MapOr(t *testing.T) {
	length := func(s string) int { return len(s) }

	if got := MapOptionOr(Some("tacos"), -1, length); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if got := MapOptionOr(None[string](), -1, length); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
}

func TestOption_MapOrElse(t *testing.T) {
	supplierCalls, fnCalls := 0, 0
	supplier := func() int { supplierCalls++; return -1 }
	length := func(s string) int { fnCalls++; return len(s) }

	if got := MapOptionOrElse(Some("hi"), supplier, length); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if supplierCalls != 0 || fnCalls != 1 {
		t.Errorf("expected only fn to run, got supplier=%d fn=%d", supplierCalls, fnCalls)
	}

	if got := MapOptionOrElse(None[string](), supplier, length); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
	if supplierCalls != 1 || fnCalls != 1 {
		t.Errorf("expected only supplier to run, got supplier=%d fn=%d", supplierCalls, fnCalls)
	}
}

func TestOption_And(t *testing.T) {
	if got := AndOption(Some(1), Some("x")); got.Unwrap() != "x" {
		t.Errorf("expected Some(x), got %v", got)
	}
	if got := AndOption(None[int](), Some("x")); !got.IsNone() {
		t.Errorf("expected None, got %v", got)
	}
}

func TestOption_AndThen_ShortCircuit(t *testing.T) {
	calls := 0
	half := func(n int) Option[int] {
		calls++
		if n%2 != 0 {
			return None[int]()
		}
		return Some(n / 2)
	}

	if got := AndThenOption(Some(8), half); got.Unwrap() != 4 {
		t.Errorf("expected Some(4), got %v", got)
	}
	if got := AndThenOption(Some(3), half); !got.IsNone() {
		t.Errorf("expected None, got %v", got)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}

	if got := AndThenOption(None[int](), half); !got.IsNone() {
		t.Errorf("expected None, got %v", got)
	}
	if calls != 2 {
		t.Errorf("fn must not run on None, got %d calls", calls)
	}
}

func TestOption_Or(t *testing.T) {
	if got := Some(1).Or(Some(2)); got.Unwrap() != 1 {
		t.Errorf("expected Some(1), got %v", got)
	}
	if got := None[int]().Or(Some(2)); got.Unwrap() != 2 {
		t.Errorf("expected Some(2), got %v", got)
	}
}

func TestOption_OrElse_Laziness(t *testing.T) {
	calls := 0
	fallback := func() Option[int] {
		calls++
		return Some(2)
	}

	if got := Some(1).OrElse(fallback); got.Unwrap() != 1 {
		t.Errorf("expected Some(1), got %v", got)
	}
	if calls != 0 {
		t.Errorf("supplier must not run when present, ran %d times", calls)
	}

	if got := None[int]().OrElse(fallback); got.Unwrap() != 2 {
		t.Errorf("expected Some(2), got %v", got)
	}
	if calls != 1 {
		t.Errorf("expected exactly one supplier call, got %d", calls)
	}
}

func TestOption_Take(t *testing.T) {
	o := Some(42)
	taken := o.Take()

	if taken.Unwrap() != 42 {
		t.Errorf("expected taken Some(42), got %v", taken)
	}
	if !o.IsNone() {
		t.Errorf("expected receiver cleared to None, got %v", o)
	}

	// Taking from None yields None and stays None.
	again := o.Take()
	if !again.IsNone() || !o.IsNone() {
		t.Error("take of None must yield None")
	}
}

func TestOption_Ptr(t *testing.T) {
	p := Some(5).Ptr()
	if p == nil || *p != 5 {
		t.Errorf("expected pointer to 5, got %v", p)
	}
	if None[int]().Ptr() != nil {
		t.Error("expected nil pointer for None")
	}
}

func TestOption_String(t *testing.T) {
	if got := Some(5).String(); got != "Some(5)" {
		t.Errorf("expected Some(5), got %q", got)
	}
	if got := None[int]().String(); got != "None" {
		t.Errorf("expected None, got %q", got)
	}
}
