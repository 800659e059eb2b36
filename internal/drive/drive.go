// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package drive provides a minimal synchronous Parent implementation, for
// callers that want to run a Collection to completion on the calling
// goroutine without bringing their own executor.
package drive

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// Waiter is a single non-blocking step that reports whether the caller
// should poll again; a small adapter around futureset.Collection[T].Poll
// satisfies it. It is defined here, rather than imported, to keep this
// package free of a dependency on the core package's generic type parameter.
type Waiter interface {
	// Step runs one non-blocking iteration. done reports the collection is
	// fully drained; the caller must not call Step again.
	Step() (done bool, err error)
}

// Parent is a Parent implementation that does nothing: RunToCompletion
// supplies its own wakeups by busy/backoff-polling instead of waiting to be
// notified, so no Wake call ever needs to do real work.
type Parent struct{}

// Wake satisfies futureset.Parent.
func (Parent) Wake() {}

// RunToCompletion drives w with Step until it reports done or returns an
// error. Every other step is followed by a wait, whether or not that step
// produced a value: spin.Wait's Once for the first 32 such steps, then
// iox.Backoff's Wait for every later one. Neither the spin count nor the
// backoff is ever reset.
func RunToCompletion(w Waiter) error {
	sw := spin.Wait{}
	bo := iox.Backoff{}
	const spinLimit = 32

	spins := 0
	for {
		done, err := w.Step()
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if spins < spinLimit {
			sw.Once()
			spins++
			continue
		}
		bo.Wait()
	}
}
