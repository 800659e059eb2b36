// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package futureset

import (
	"unsafe"

	"code.hybscloud.com/atomix"
)

const (
	// stateQueued is the top bit of a node's state word: set iff the node
	// is currently reachable from the readiness queue (or is the stub,
	// which is permanently considered queued).
	stateQueued = uint64(1) << 63

	// maxRefs bounds the reference count living in the low 63 bits of the
	// state word. Exceeding it aborts the process rather than risk the
	// count wrapping into the QUEUED bit.
	maxRefs = stateQueued - 1
)

// node is one live computation plus its linkage, allocated once per
// submitted Task and once more for the collection's permanent stub.
//
// task, nextAll and prevAll are touched only by the consumer goroutine
// (whichever goroutine is currently inside Collection.Poll/Submit/Close).
// nextReadiness and state are shared: every field access on them must go
// through atomix.
type node[T any] struct {
	_    pad
	task Task[T] // cleared on completion, error, or collection Close

	nextAll, prevAll *node[T] // owner-set links, consumer-only

	_             pad
	nextReadiness atomix.Uintptr // MPSC link: a *node[T], or 0

	_     pad
	state atomix.Uint64 // refcount (low 63 bits) | stateQueued (bit 63)
}

// newNode allocates a node pre-queued with one strong reference, per
// SPEC_FULL.md §3's node lifecycle ("state = QUEUED | 1").
func newNode[T any](t Task[T]) *node[T] {
	n := &node[T]{task: t}
	n.state.StoreRelaxed(stateQueued | 1)
	return n
}

// nodePtr reinterprets n as the uintptr carried by the readiness queue's
// link fields. The round trip never outlives the node (the queue only ever
// holds nodes that are also kept alive by a strong reference), mirroring
// the teacher's SPSCPtr/atomix.Uintptr pointer-as-integer idiom.
func nodePtr[T any](n *node[T]) uintptr {
	return uintptr(unsafe.Pointer(n))
}

func nodeFromPtr[T any](p uintptr) *node[T] {
	return (*node[T])(unsafe.Pointer(p))
}

// linkHead splices n at the head of the owner set rooted at *head.
func linkHead[T any](head **node[T], n *node[T]) {
	n.prevAll = nil
	n.nextAll = *head
	if *head != nil {
		(*head).prevAll = n
	}
	*head = n
}

// unlink splices n out of the owner set rooted at *head. Safe to call
// twice; the second call is a no-op because both of n's links are nil
// after the first.
func unlink[T any](head **node[T], n *node[T]) {
	next, prev := n.nextAll, n.prevAll
	n.nextAll, n.prevAll = nil, nil

	if next != nil {
		next.prevAll = prev
	}
	if prev != nil {
		prev.nextAll = next
	} else if *head == n {
		*head = next
	}
}
