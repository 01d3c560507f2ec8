package sumz

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Name is a type alias for queue and retry instance names.
// Using this type encourages storing names as constants rather than
// using inline strings throughout your code.
type Name = string

// Metric keys for PriorityQueue observability.
const (
	QueuePushedTotal  = metricz.Key("queue.pushed.total")
	QueuePoppedTotal  = metricz.Key("queue.popped.total")
	QueueClearedTotal = metricz.Key("queue.cleared.total")
	QueueDepth        = metricz.Key("queue.depth")
)

// Span names and tags for PriorityQueue bulk operations.
const (
	QueueAppendSpan  = tracez.Key("queue.append")
	QueueOrderBySpan = tracez.Key("queue.orderby")

	QueueTagName   = tracez.Tag("queue.name")
	QueueTagSource = tracez.Tag("queue.source")
	QueueTagCount  = tracez.Tag("queue.count")
)

// Hook event keys for PriorityQueue.
const (
	QueueEventPushed   = hookz.Key("queue.pushed")
	QueueEventPopped   = hookz.Key("queue.popped")
	QueueEventCleared  = hookz.Key("queue.cleared")
	QueueEventAppended = hookz.Key("queue.appended")
)

// QueueEvent represents a structural change to a PriorityQueue.
// It is emitted via hookz on push, pop, clear, and append, allowing external
// systems to watch queue churn without polling.
type QueueEvent struct {
	Name      Name      // Queue instance name
	Depth     int       // Queue depth after the operation
	Count     int       // Items affected (1 for push/pop, batch size otherwise)
	Timestamp time.Time // When the event occurred
}

// QueueType selects which end of the priority ordering Pop and Peek serve.
type QueueType int

const (
	// MaxFirst serves the highest priority first.
	MaxFirst QueueType = iota
	// MinFirst serves the lowest priority first.
	MinFirst
)

// PriorityQueue is a stable, bucketed priority multi-queue. Each item's
// priority is derived by a selector; items sharing a priority form a bucket
// served in strict insertion order (FIFO), so the structure is stable.
//
// Push, Pop, Peek, Clear, and Append serialize on a single mutex and are
// safe for concurrent callers. Traversals are NOT atomic with respect to
// concurrent mutation: they detect interference through version counters
// and fail fast with ErrConcurrentModification instead of returning stale
// or corrupted data. See Iter and Drain.
//
// Two counters track structural change independently:
//   - version moves on push, successful pop, and clear, and guards
//     non-consuming traversal;
//   - drainVersion moves only on push and clear, so a consuming traversal
//     tolerates pops from elsewhere - draining and popping are compatible.
//
// Example:
//
//	q := sumz.NewMaxQueue("jobs", func(j Job) int { return j.Urgency })
//	q.Push(job)
//	if j, ok := q.Pop().TryUnwrap(); ok {
//	    run(j)
//	}
//
// # Observability
//
// PriorityQueue follows the connector observability pattern: a metrics
// registry, a tracer for bulk operations, and typed hook events.
//
// Metrics:
//   - queue.pushed.total: Counter of pushed items
//   - queue.popped.total: Counter of successfully popped items
//   - queue.cleared.total: Counter of clear operations
//   - queue.depth: Gauge of current depth
//
// Traces:
//   - queue.append: Span for bulk append
//   - queue.orderby: Span for re-keyed queue construction
//
// Events (via hooks):
//   - queue.pushed, queue.popped, queue.cleared, queue.appended
type PriorityQueue[T any, P comparable] struct {
	mu       sync.Mutex
	name     Name
	kind     QueueType
	selector func(T) P
	compare  func(P, P) int
	order    []P // priorities ascending per compare; parallel to buckets
	buckets  map[P][]T
	size     int

	version      uint64 // push, successful pop, clear
	drainVersion uint64 // push, clear

	clock   clockz.Clock
	metrics *metricz.Registry
	tracer  *tracez.Tracer
	hooks   *hookz.Hooks[QueueEvent]
}

// NewPriorityQueue creates a PriorityQueue with an explicit comparator.
// compare follows the cmp.Compare convention (negative when a orders before
// b). Any seed items are pushed in order.
func NewPriorityQueue[T any, P comparable](name Name, kind QueueType, selector func(T) P, compare func(P, P) int, items ...T) *PriorityQueue[T, P] {
	metrics := metricz.New()
	metrics.Counter(QueuePushedTotal)
	metrics.Counter(QueuePoppedTotal)
	metrics.Counter(QueueClearedTotal)
	metrics.Gauge(QueueDepth)

	q := &PriorityQueue[T, P]{
		name:     name,
		kind:     kind,
		selector: selector,
		compare:  compare,
		buckets:  make(map[P][]T),
		clock:    clockz.RealClock,
		metrics:  metrics,
		tracer:   tracez.New(),
		hooks:    hookz.New[QueueEvent](),
	}
	for _, item := range items {
		q.Push(item)
	}
	return q
}

// NewMaxQueue creates a highest-priority-first queue over a naturally
// ordered priority key.
func NewMaxQueue[T any, P cmp.Ordered](name Name, selector func(T) P, items ...T) *PriorityQueue[T, P] {
	return NewPriorityQueue(name, MaxFirst, selector, cmp.Compare[P], items...)
}

// NewMinQueue creates a lowest-priority-first queue over a naturally
// ordered priority key.
func NewMinQueue[T any, P cmp.Ordered](name Name, selector func(T) P, items ...T) *PriorityQueue[T, P] {
	return NewPriorityQueue(name, MinFirst, selector, cmp.Compare[P], items...)
}

// Push derives the item's priority and appends it to the end of that
// priority's bucket, creating the bucket if new.
func (q *PriorityQueue[T, P]) Push(item T) {
	q.mu.Lock()
	q.pushLocked(item)
	depth := q.size
	q.mu.Unlock()

	q.metrics.Counter(QueuePushedTotal).Inc()
	q.metrics.Gauge(QueueDepth).Set(float64(depth))
	_ = q.hooks.Emit(context.Background(), QueueEventPushed, QueueEvent{ //nolint:errcheck
		Name:      q.name,
		Depth:     depth,
		Count:     1,
		Timestamp: q.getClock().Now(),
	})
}

func (q *PriorityQueue[T, P]) pushLocked(item T) {
	p := q.selector(item)
	if _, ok := q.buckets[p]; !ok {
		idx, _ := slices.BinarySearchFunc(q.order, p, q.compare)
		q.order = slices.Insert(q.order, idx, p)
	}
	q.buckets[p] = append(q.buckets[p], item)
	q.size++
	q.version++
	q.drainVersion++
}

// Peek returns the next item Pop would serve without removing it, or None
// when the queue is empty. Peek never moves the version counters.
func (q *PriorityQueue[T, P]) Peek() Option[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.size == 0 {
		return None[T]()
	}
	bucket := q.buckets[q.order[q.frontLocked()]]
	return Some(bucket[0])
}

// Pop removes and returns the first-inserted item of the highest (MaxFirst)
// or lowest (MinFirst) priority bucket, or None when empty. A successful
// pop moves the non-consuming version counter only - consuming traversals
// stay valid.
func (q *PriorityQueue[T, P]) Pop() Option[T] {
	q.mu.Lock()
	item, ok := q.popLocked()
	depth := q.size
	q.mu.Unlock()

	if !ok {
		return None[T]()
	}
	q.emitPopped(depth)
	return Some(item)
}

func (q *PriorityQueue[T, P]) emitPopped(depth int) {
	q.metrics.Counter(QueuePoppedTotal).Inc()
	q.metrics.Gauge(QueueDepth).Set(float64(depth))
	_ = q.hooks.Emit(context.Background(), QueueEventPopped, QueueEvent{ //nolint:errcheck
		Name:      q.name,
		Depth:     depth,
		Count:     1,
		Timestamp: q.getClock().Now(),
	})
}

// frontLocked returns the index into order of the bucket Pop serves next.
func (q *PriorityQueue[T, P]) frontLocked() int {
	if q.kind == MaxFirst {
		return len(q.order) - 1
	}
	return 0
}

func (q *PriorityQueue[T, P]) popLocked() (T, bool) {
	if q.size == 0 {
		var zero T
		return zero, false
	}
	idx := q.frontLocked()
	p := q.order[idx]
	bucket := q.buckets[p]
	item := bucket[0]
	if len(bucket) == 1 {
		delete(q.buckets, p)
		q.order = slices.Delete(q.order, idx, idx+1)
	} else {
		q.buckets[p] = bucket[1:]
	}
	q.size--
	q.version++
	return item, true
}

// Clear empties every bucket. Both traversal modes are invalidated.
func (q *PriorityQueue[T, P]) Clear() {
	q.mu.Lock()
	cleared := q.size
	q.order = nil
	q.buckets = make(map[P][]T)
	q.size = 0
	q.version++
	q.drainVersion++
	q.mu.Unlock()

	q.metrics.Counter(QueueClearedTotal).Inc()
	q.metrics.Gauge(QueueDepth).Set(0)
	_ = q.hooks.Emit(context.Background(), QueueEventCleared, QueueEvent{ //nolint:errcheck
		Name:      q.name,
		Depth:     0,
		Count:     cleared,
		Timestamp: q.getClock().Now(),
	})
}

// Len returns the number of items across all buckets.
func (q *PriorityQueue[T, P]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Items returns a snapshot of the queue's items in traversal order:
// buckets from the end Pop serves toward the other, insertion order within
// each bucket. The queue is not consumed.
func (q *PriorityQueue[T, P]) Items() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.itemsLocked()
}

func (q *PriorityQueue[T, P]) itemsLocked() []T {
	out := make([]T, 0, q.size)
	if q.kind == MaxFirst {
		for i := len(q.order) - 1; i >= 0; i-- {
			out = append(out, q.buckets[q.order[i]]...)
		}
	} else {
		for _, p := range q.order {
			out = append(out, q.buckets[p]...)
		}
	}
	return out
}

// Append pushes every item of other, in other's traversal order, into q.
// Priorities are recomputed with q's own selector - other's keys are
// irrelevant - and other is left untouched.
func (q *PriorityQueue[T, P]) Append(other *PriorityQueue[T, P]) {
	_, span := q.tracer.StartSpan(context.Background(), QueueAppendSpan)
	defer span.Finish()
	span.SetTag(QueueTagName, string(q.name))
	span.SetTag(QueueTagSource, string(other.name))

	items := other.Items()
	span.SetTag(QueueTagCount, fmt.Sprintf("%d", len(items)))

	q.mu.Lock()
	for _, item := range items {
		q.pushLocked(item)
	}
	depth := q.size
	q.mu.Unlock()

	for range items {
		q.metrics.Counter(QueuePushedTotal).Inc()
	}
	q.metrics.Gauge(QueueDepth).Set(float64(depth))
	_ = q.hooks.Emit(context.Background(), QueueEventAppended, QueueEvent{ //nolint:errcheck
		Name:      q.name,
		Depth:     depth,
		Count:     len(items),
		Timestamp: q.getClock().Now(),
	})
}

// OrderQueueBy builds a NEW queue over the same items, keyed by selector and
// ordered by compare, descending or ascending. The source queue is not
// consumed. This is the composition point for multi-key sorting: order by
// one key, then re-order the result by another.
func OrderQueueBy[T any, P, K comparable](q *PriorityQueue[T, P], selector func(T) K, compare func(K, K) int, descending bool) *PriorityQueue[T, K] {
	_, span := q.tracer.StartSpan(context.Background(), QueueOrderBySpan)
	defer span.Finish()
	span.SetTag(QueueTagSource, string(q.name))

	kind := MinFirst
	if descending {
		kind = MaxFirst
	}
	items := q.Items()
	span.SetTag(QueueTagCount, fmt.Sprintf("%d", len(items)))
	return NewPriorityQueue(q.name+":ordered", kind, selector, compare, items...)
}

// Name returns the name of this queue.
func (q *PriorityQueue[T, P]) Name() Name {
	return q.name
}

// Type returns whether the queue serves highest or lowest priority first.
func (q *PriorityQueue[T, P]) Type() QueueType {
	return q.kind
}

// Metrics returns the metrics registry for this queue.
func (q *PriorityQueue[T, P]) Metrics() *metricz.Registry {
	return q.metrics
}

// Tracer returns the tracer for this queue.
func (q *PriorityQueue[T, P]) Tracer() *tracez.Tracer {
	return q.tracer
}

// WithClock sets a custom clock for event timestamps. Returns the queue for
// chaining during construction.
func (q *PriorityQueue[T, P]) WithClock(clock clockz.Clock) *PriorityQueue[T, P] {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.clock = clock
	return q
}

// getClock returns the clock to use.
func (q *PriorityQueue[T, P]) getClock() clockz.Clock {
	if q.clock == nil {
		return clockz.RealClock
	}
	return q.clock
}

// Close gracefully shuts down observability components.
func (q *PriorityQueue[T, P]) Close() error {
	if q.tracer != nil {
		q.tracer.Close()
	}
	q.hooks.Close()
	return nil
}

// OnPushed registers a handler called after each push.
func (q *PriorityQueue[T, P]) OnPushed(handler func(context.Context, QueueEvent) error) error {
	_, err := q.hooks.Hook(QueueEventPushed, handler)
	return err
}

// OnPopped registers a handler called after each successful pop.
func (q *PriorityQueue[T, P]) OnPopped(handler func(context.Context, QueueEvent) error) error {
	_, err := q.hooks.Hook(QueueEventPopped, handler)
	return err
}

// OnCleared registers a handler called after each clear.
func (q *PriorityQueue[T, P]) OnCleared(handler func(context.Context, QueueEvent) error) error {
	_, err := q.hooks.Hook(QueueEventCleared, handler)
	return err
}

// OnAppended registers a handler called after each bulk append.
func (q *PriorityQueue[T, P]) OnAppended(handler func(context.Context, QueueEvent) error) error {
	_, err := q.hooks.Hook(QueueEventAppended, handler)
	return err
}
