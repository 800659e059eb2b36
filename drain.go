// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package futureset

import (
	"context"
	"iter"
)

// Result is one yielded outcome from Drain: either a completed task's
// value, or the error an errored task returned.
type Result[T any] struct {
	Value T
	Err   error
}

// Drain returns an iterator that polls c to completion, yielding one
// Result per Ready or Err outcome, blocking the iterating goroutine
// between NotReady polls instead of busy-spinning. It stops early, without
// a final Result, if ctx is done while it is waiting after a NotReady poll;
// ctx is not checked between Ready or Err results.
//
// Drain owns its own Parent for the duration of iteration; c must not be
// polled by anything else concurrently while ranging over the returned
// sequence. Drain is a consumer-side convenience only — it has no bearing
// on how tasks got into c, and does not build a Collection from an input
// sequence.
func (c *Collection[T]) Drain(ctx context.Context) iter.Seq[Result[T]] {
	return func(yield func(Result[T]) bool) {
		wake := make(chan struct{}, 1)
		parent := ParentFunc(func() {
			select {
			case wake <- struct{}{}:
			default:
			}
		})

		for {
			state, value, err := c.Poll(parent)
			switch state {
			case Drained:
				return
			case NotReady:
				select {
				case <-wake:
				case <-ctx.Done():
					return
				}
			case Ready:
				if !yield(Result[T]{Value: value}) {
					return
				}
			case Err:
				if !yield(Result[T]{Err: err}) {
					return
				}
			}
		}
	}
}
