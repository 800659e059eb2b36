// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package futureset

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

// parentBox boxes a Parent so it can live behind an atomic.Pointer. Parent
// is an interface, and atomix — like the teacher's queues — only wraps
// fixed-width integer primitives (Uint64, Int64, Int32, Bool, Uintptr,
// Uint128), so the one place this package reaches for the standard
// library's atomic.Pointer[T] instead of atomix is here.
type parentBox struct{ p Parent }

// sharedHead is the refcounted object every Waker vended by a Collection
// points at. It never reads T, so it is safe to hand to arbitrary
// goroutines regardless of whether T itself is thread-safe.
type sharedHead[T any] struct {
	_        pad
	queue    readinessQueue[T]
	_        pad
	refCount atomix.Uint64
	_        pad
	parent   atomic.Pointer[parentBox]
}

func newSharedHead[T any](stub *node[T]) *sharedHead[T] {
	h := &sharedHead[T]{queue: newReadinessQueue(stub)}
	h.refCount.StoreRelaxed(1)
	return h
}

// register installs p as the parent to notify, overwriting whatever was
// registered before. Called only by the consumer, at the top of every
// Collection.Poll — see SPEC_FULL.md §4.4 step 1 and the Open Question in
// DESIGN.md.
func (h *sharedHead[T]) register(p Parent) {
	h.parent.Store(&parentBox{p})
}

// wakeParent pings the currently registered parent, if any. A notifier
// firing before the first Poll call has nothing to wake; that is not an
// error, the eventual first Poll will simply find the node already ready.
func (h *sharedHead[T]) wakeParent() {
	if b := h.parent.Load(); b != nil {
		b.p.Wake()
	}
}

// cloneRef increments the shared head's own reference count, mirroring
// Arc::clone / the original's UnsafeNotify::clone_raw.
func (h *sharedHead[T]) cloneRef() {
	if h.refCount.AddAcqRel(1)-1 > maxRefs {
		abort("futureset: shared head refcount overflow")
	}
}

// dropRef releases one reference to the shared head, matching the
// original's UnsafeNotify::drop_raw. The shared head holds no resources
// beyond Go-managed memory, so "destroy" only needs to stop being
// reachable; dropRef only keeps the protocol's ref-balance count, and
// nothing frees or checks anything when it reaches zero.
func (h *sharedHead[T]) dropRef() {
	h.refCount.FetchSubSeqCst(1)
}

// nodeWaker is the concrete Waker installed into a Task before it is
// polled. It identifies exactly one node, by holding a typed pointer to it
// directly — the Go analogue of the original's (*mut Inner<T>, id) pair,
// without the id's type-erasure role, which Go generics make unnecessary.
// See DESIGN.md "Open Question resolutions".
type nodeWaker[T any] struct {
	head *sharedHead[T]
	n    *node[T]
}

var _ Waker = (*nodeWaker[int])(nil)

// Wake is §4.5's notify: the unique authorisation to enqueue n is winning
// the 0->1 transition of its stateQueued bit.
func (w *nodeWaker[T]) Wake() {
	prev := w.n.state.FetchOrSeqCst(stateQueued)
	if prev&stateQueued == 0 {
		w.head.queue.enqueue(w.n)
		w.head.wakeParent()
	}
}

// Clone returns an independent Waker over the same node, incrementing both
// the node's reference count and the shared head's.
func (w *nodeWaker[T]) Clone() Waker {
	if old := w.n.state.AddAcqRel(1) - 1; old&^stateQueued >= maxRefs {
		abort("futureset: node refcount overflow")
	}
	w.head.cloneRef()
	return &nodeWaker[T]{head: w.head, n: w.n}
}

// Release runs the node-release procedure from SPEC_FULL.md §4.5, then
// drops the accompanying shared-head reference.
func (w *nodeWaker[T]) Release() {
	releaseNodeRef(w.n)
	w.head.dropRef()
}

// releaseNodeRef is the node-release procedure shared by nodeWaker.Release
// and the consumer-side release paths in collection.go.
func releaseNodeRef[T any](n *node[T]) {
	old := n.state.FetchSubSeqCst(1)
	if old&^stateQueued != 1 {
		return
	}
	if n.task != nil {
		abort("futureset: released last reference to a node with a live task")
	}
}
