// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package futureset multiplexes a dynamic set of independently progressing
// [Task] values, yielding each one's result as soon as it is ready,
// regardless of submission order.
//
// # Quick Start
//
//	c := futureset.New[int]()
//	c.Submit(myTask)
//	c.Submit(anotherTask)
//
//	for {
//	    state, value, err := c.Poll(parent)
//	    switch state {
//	    case futureset.Ready:
//	        handle(value)
//	    case futureset.Err:
//	        handle(err)
//	    case futureset.NotReady:
//	        return // wait for parent.Wake
//	    case futureset.Drained:
//	        return // nothing left
//	    }
//	}
//
// For a minimal single-goroutine driver that handles the NotReady/backoff
// loop for you, see [code.hybscloud.com/futureset/internal/drive].
//
// # Task and Waker
//
// A [Task] is polled until it reports ready. While not ready, it should
// either have already arranged for something to call its [Waker]'s Wake
// method, or expect never to be polled again. A Waker obtained via Clone
// must eventually have Release called on it exactly once — see the [Waker]
// doc comment.
//
// # Concurrency
//
// Exactly one goroutine at a time may call Submit, Poll, or Close on a
// given [Collection]. Any number of goroutines may concurrently call Wake,
// Clone, and Release on Waker values the collection has handed out.
//
// # Internals
//
// The engine behind Poll is a lock-free intrusive MPSC queue of ready
// nodes (queue.go) plus a doubly-linked owner set (node.go) — the same
// shape as code.hybscloud.com/lfq's bounded queues, generalized
// from fixed-capacity ring slots to reference-counted heap nodes with
// unbounded lifetime. See DESIGN.md for the full grounding of each piece.
package futureset
