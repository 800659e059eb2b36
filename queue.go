// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package futureset

import "code.hybscloud.com/atomix"

// readinessQueue is Vyukov's intrusive MPSC queue, specialised to *node[T]
// and a permanent sentinel stub. head is the producer-side linearisation
// point (any goroutine may swap it); tail lives on the owning Collection
// and is touched only by the consumer.
//
// This is the same "1024cores.net" algorithm credited by
// original_source/src/stream/futures_unordered.rs; the Go translation
// below follows its enqueue/dequeue control flow exactly.
type readinessQueue[T any] struct {
	_    pad
	head atomix.Uintptr // producer side: *node[T] of the current tail
}

// newReadinessQueue initialises a queue whose sole member is stub, matching
// §4.1 "create()": the stub starts out permanently queued and is both the
// producer-side head and the consumer-side tail.
func newReadinessQueue[T any](stub *node[T]) readinessQueue[T] {
	var q readinessQueue[T]
	q.head.StoreRelaxed(nodePtr(stub))
	return q
}

// enqueue runs on any goroutine. The caller must already have claimed the
// slot by flipping n's stateQueued bit from 0 to 1 (§4.3 step 1).
func (q *readinessQueue[T]) enqueue(n *node[T]) {
	n.nextReadiness.StoreRelaxed(0)

	prev := q.head.SwapAcqRel(nodePtr(n))
	nodeFromPtr[T](prev).nextReadiness.StoreRelease(nodePtr(n))
}

type dequeueStatus int

const (
	dequeueEmpty dequeueStatus = iota
	dequeueInconsistent
	dequeueData
)

// dequeue runs only on the consumer. tail is the consumer-owned cursor
// (Collection.tail); stub identifies the sentinel so the stub-push
// separator case (§4.3 step 5) can be recognised.
func dequeue[T any](tail **node[T], stub *node[T], q *readinessQueue[T]) (dequeueStatus, *node[T]) {
	t := *tail
	next := t.nextReadiness.LoadAcquire()

	if t == stub {
		if next == 0 {
			return dequeueEmpty, nil
		}
		*tail = nodeFromPtr[T](next)
		t = *tail
		next = t.nextReadiness.LoadAcquire()
	}

	if next != 0 {
		*tail = nodeFromPtr[T](next)
		return dequeueData, t
	}

	if q.head.LoadAcquire() != nodePtr(t) {
		return dequeueInconsistent, nil
	}

	// Push the stub as a separator (§4.3 step 5); its stateQueued bit has
	// been set since creation and is never cleared, so enqueue's
	// precondition already holds. There is exactly one consumer, so no
	// other goroutine can observe the transient gap this creates between
	// an "empty" read and the stub landing.
	q.enqueue(stub)

	next = t.nextReadiness.LoadAcquire()
	if next != 0 {
		*tail = nodeFromPtr[T](next)
		return dequeueData, t
	}

	return dequeueInconsistent, nil
}
