// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package futureset

// PollState is the four-way outcome of a single [Collection.Poll] call.
type PollState int

const (
	// NotReady means no task yielded a value this call; call Poll again
	// once something wakes the parent.
	NotReady PollState = iota
	// Ready means a task completed and its value is returned alongside.
	Ready
	// Drained means the collection holds no tasks at all.
	Drained
	// Err means a task returned a non-nil error; that task is removed.
	Err
)

func (s PollState) String() string {
	switch s {
	case NotReady:
		return "NotReady"
	case Ready:
		return "Ready"
	case Drained:
		return "Drained"
	case Err:
		return "Err"
	default:
		return "PollState(?)"
	}
}

// Collection is an unordered multiplexer over Task[T] values: any number of
// goroutines may hold and use Wakers for tasks already submitted, but
// Submit, Poll, and Close must be called from one goroutine at a time (they
// may be called from different goroutines across calls, as long as no two
// calls to any of them overlap).
type Collection[T any] struct {
	stub node[T]
	head *sharedHead[T]

	headAll *node[T] // owner set, consumer-only
	tail    *node[T] // readiness-queue consumer cursor

	length int
	closed bool

	cfg config
}

// New creates an empty Collection.
func New[T any](opts ...Option) *Collection[T] {
	c := &Collection[T]{cfg: newConfig(opts)}
	c.stub.state.StoreRelaxed(stateQueued | 1)
	c.head = newSharedHead[T](&c.stub)
	c.tail = &c.stub
	return c
}

// Len reports the number of tasks currently owned by c: submitted, not yet
// completed or errored, and not yet removed by Close.
func (c *Collection[T]) Len() int { return c.length }

// IsEmpty reports whether c owns no tasks.
func (c *Collection[T]) IsEmpty() bool { return c.length == 0 }

// Submit adds t to the collection. t is not polled until the next call to
// Poll; submission order has no bearing on completion order.
func (c *Collection[T]) Submit(t Task[T]) error {
	if c.closed {
		return ErrCollectionClosed
	}
	n := newNode(t)
	linkHead(&c.headAll, n)
	c.length++
	c.head.queue.enqueue(n)
	c.cfg.logger.Submitted(c.length)
	return nil
}

// Poll polls queued tasks one after another until one completes or errors,
// the queue runs empty, or a producer is caught mid-enqueue; it returns at
// most one task's result per call. parent is registered as
// the handle to notify the next time any task becomes ready; it is
// re-registered on every call, so passing the same value repeatedly is
// always correct.
func (c *Collection[T]) Poll(parent Parent) (PollState, T, error) {
	var zero T
	c.head.register(parent)

	for {
		status, n := dequeue(&c.tail, &c.stub, &c.head.queue)

		switch status {
		case dequeueEmpty:
			if c.length == 0 {
				return Drained, zero, nil
			}
			return NotReady, zero, nil

		case dequeueInconsistent:
			// A producer is mid-enqueue; request another look rather than
			// busy-spin on the consumer goroutine.
			c.head.wakeParent()
			return NotReady, zero, nil

		case dequeueData:
			if n == &c.stub {
				// Never surfaced by dequeue per its own contract, but stay
				// defensive rather than silently corrupt the owner set.
				abort("futureset: readiness queue yielded the stub")
			}

			if n.task == nil {
				// Stale entry: releaseNode already ran while the node was
				// still queued (see releaseNode below); this revisit is
				// where its last strong ref finally drops.
				if n.nextAll != nil || n.prevAll != nil {
					abort("futureset: stale node still linked in owner set")
				}
				releaseNodeRef(n)
				continue
			}

			prev := n.state.FetchAndSeqCst(^stateQueued)
			if prev&stateQueued == 0 {
				abort("futureset: dequeued node was not marked queued")
			}

			w := &nodeWaker[T]{head: c.head, n: n}
			value, err, ready := n.task.Poll(w)
			if !ready && err == nil {
				continue
			}

			c.length--
			c.releaseNode(n)
			if err != nil {
				return Err, zero, err
			}
			return Ready, value, nil
		}
	}
}

// releaseNode implements the node-release procedure: block future
// enqueues, drop the task, unlink from the owner set, and drop the
// owner-set's own strong reference unless the node is still reachable from
// the readiness queue (in which case the consumer will drop it on the next
// revisit, via the n.task == nil branch in Poll).
func (c *Collection[T]) releaseNode(n *node[T]) {
	prev := n.state.FetchOrSeqCst(stateQueued)
	n.task = nil
	unlink(&c.headAll, n)
	if prev&stateQueued == 0 {
		releaseNodeRef(n)
	}
}

// Close releases every task currently owned by the collection and drops
// the collection's own reference to the shared head. Wakers already handed
// out to in-flight tasks remain valid; their nodes are freed independently
// once every outstanding Waker calls Release.
//
// Close is idempotent: calling it again is a no-op.
func (c *Collection[T]) Close() {
	if c.closed {
		return
	}
	c.closed = true

	drained := 0
	for c.headAll != nil {
		n := c.headAll
		c.releaseNode(n)
		drained++
	}
	c.length = 0
	c.head.dropRef()
	c.cfg.logger.Closed(drained)
}
