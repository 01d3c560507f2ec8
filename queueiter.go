package sumz

import "fmt"

// Iterator is the non-consuming traversal of a PriorityQueue: buckets from
// the end Pop serves toward the other end, insertion order within each
// bucket. The queue is not modified.
//
// Iterator follows the scanner shape:
//
//	it := q.Iter()
//	for it.Next() {
//	    use(it.Value())
//	}
//	if err := it.Err(); err != nil {
//	    // errors.Is(err, sumz.ErrConcurrentModification)
//	}
//
// Any push or pop on the queue invalidates the traversal: the next call to
// Next reports false and Err returns ErrConcurrentModification. Reset
// re-arms the iterator against the queue's current state.
type Iterator[T any, P comparable] struct {
	q       *PriorityQueue[T, P]
	version uint64
	bucket  int // index into q.order
	item    int // index within the current bucket
	current T
	err     error
}

// Iter begins a non-consuming traversal.
func (q *PriorityQueue[T, P]) Iter() *Iterator[T, P] {
	q.mu.Lock()
	defer q.mu.Unlock()
	it := &Iterator[T, P]{q: q}
	it.rewindLocked()
	return it
}

// rewindLocked recomputes the starting bucket index and captures the
// current version. Caller holds q.mu.
func (it *Iterator[T, P]) rewindLocked() {
	it.version = it.q.version
	it.item = 0
	it.err = nil
	if it.q.kind == MaxFirst {
		it.bucket = len(it.q.order) - 1
	} else {
		it.bucket = 0
	}
}

// Next advances to the next item, reporting whether one was produced.
// It reports false at the end of the traversal or when the queue was
// mutated since the traversal began; the two are distinguished by Err.
func (it *Iterator[T, P]) Next() bool {
	q := it.q
	q.mu.Lock()
	defer q.mu.Unlock()

	if it.err != nil {
		return false
	}
	if q.version != it.version {
		it.err = fmt.Errorf("%w: push or pop during non-consuming traversal", ErrConcurrentModification)
		return false
	}
	for it.bucket >= 0 && it.bucket < len(q.order) {
		bucket := q.buckets[q.order[it.bucket]]
		if it.item < len(bucket) {
			it.current = bucket[it.item]
			it.item++
			return true
		}
		it.item = 0
		if q.kind == MaxFirst {
			it.bucket--
		} else {
			it.bucket++
		}
	}
	return false
}

// Value returns the item produced by the last successful Next.
func (it *Iterator[T, P]) Value() T {
	return it.current
}

// Err returns ErrConcurrentModification (wrapped) when the traversal was
// invalidated, nil otherwise.
func (it *Iterator[T, P]) Err() error {
	return it.err
}

// Reset restarts the traversal from the queue's current state, recomputing
// the starting bucket index. It always succeeds for non-consuming
// traversal.
func (it *Iterator[T, P]) Reset() error {
	it.q.mu.Lock()
	defer it.q.mu.Unlock()
	it.rewindLocked()
	return nil
}

// Drainer is the consuming traversal of a PriorityQueue: each Next pops the
// queue. A pop from elsewhere does NOT invalidate a drain, since draining
// and popping both only remove; a push or clear does.
//
//	d := q.Drain()
//	for d.Next() {
//	    handle(d.Value())
//	}
//	if err := d.Err(); err != nil {
//	    // queue grew mid-drain
//	}
//
// A Drainer cannot be restarted: Reset fails with ErrInvalidState.
type Drainer[T any, P comparable] struct {
	q       *PriorityQueue[T, P]
	version uint64
	current T
	err     error
}

// Drain begins a consuming traversal.
func (q *PriorityQueue[T, P]) Drain() *Drainer[T, P] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return &Drainer[T, P]{q: q, version: q.drainVersion}
}

// Next pops the next item, reporting whether one was produced. It reports
// false when the queue is empty or when a push or clear occurred since the
// drain began; the two are distinguished by Err.
func (d *Drainer[T, P]) Next() bool {
	if d.err != nil {
		return false
	}
	q := d.q
	q.mu.Lock()
	if q.drainVersion != d.version {
		q.mu.Unlock()
		d.err = fmt.Errorf("%w: push or clear during consuming traversal", ErrConcurrentModification)
		return false
	}
	item, ok := q.popLocked()
	depth := q.size
	q.mu.Unlock()

	if !ok {
		return false
	}
	q.emitPopped(depth)
	d.current = item
	return true
}

// Value returns the item produced by the last successful Next.
func (d *Drainer[T, P]) Value() T {
	return d.current
}

// Err returns ErrConcurrentModification (wrapped) when the drain was
// invalidated, nil otherwise.
func (d *Drainer[T, P]) Err() error {
	return d.err
}

// Reset always fails: a consuming traversal has discarded what it served
// and cannot be restarted.
func (d *Drainer[T, P]) Reset() error {
	return fmt.Errorf("%w: consuming traversal cannot be restarted", ErrInvalidState)
}
