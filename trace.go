package sumz

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/zoobzio/clockz"
)

// traceDepth caps the number of frames captured per Err construction.
const traceDepth = 32

// Trace records where and when an error entered a Result. It is captured at
// Err construction so that a later Unwrap panic still points at the original
// failure site rather than the unwrap call site. This is best-effort
// diagnostic preservation, not a bit-exact stack reproduction.
type Trace struct {
	Captured time.Time
	pcs      []uintptr
}

// captureTrace records the caller's stack, skipping the given number of
// frames above captureTrace itself.
func captureTrace(skip int) *Trace {
	pcs := make([]uintptr, traceDepth)
	n := runtime.Callers(skip+2, pcs)
	return &Trace{
		Captured: clockz.RealClock.Now(),
		pcs:      pcs[:n],
	}
}

// Frames resolves the captured program counters to runtime frames.
func (t *Trace) Frames() []runtime.Frame {
	frames := runtime.CallersFrames(t.pcs)
	out := make([]runtime.Frame, 0, len(t.pcs))
	for {
		f, more := frames.Next()
		out = append(out, f)
		if !more {
			break
		}
	}
	return out
}

// String formats the trace as one "file:line func" entry per frame.
func (t *Trace) String() string {
	var b strings.Builder
	for _, f := range t.Frames() {
		fmt.Fprintf(&b, "%s:%d %s\n", f.File, f.Line, f.Function)
	}
	return b.String()
}

// TraceError pairs an error payload with the Trace captured when it was
// wrapped into a Result. Result.Unwrap panics with a *TraceError so the
// recovered value still identifies the original failure site.
// Unwrap returns the original error, so errors.Is and errors.As see through
// the wrapper.
type TraceError struct {
	Err   error
	Trace *Trace
}

// Error implements the error interface, appending the captured trace.
func (e *TraceError) Error() string {
	if e.Trace == nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v\ncaptured at:\n%s", e.Err, e.Trace)
}

// Unwrap returns the original error.
func (e *TraceError) Unwrap() error {
	return e.Err
}
