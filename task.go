// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package futureset

// Task is one unit of asynchronous work, advanced one non-blocking step at
// a time by a [Collection].
//
// Poll must never block. While the task is not yet complete it returns
// ready=false; the task may keep w and call w.Wake later (from any
// goroutine, including its own) to request another Poll. Once a task
// returns ready=true or a non-nil error, it is never polled again.
type Task[T any] interface {
	Poll(w Waker) (value T, err error, ready bool)
}

// TaskFunc adapts a plain poll function to satisfy [Task].
type TaskFunc[T any] func(w Waker) (value T, err error, ready bool)

// Poll calls f.
func (f TaskFunc[T]) Poll(w Waker) (T, error, bool) { return f(w) }

// Waker is the notifier a [Task] holds onto to request re-polling.
//
// The Waker passed into Poll is only valid for the duration of that call —
// a Task that returns ready=false without retaining anything is relying on
// some other mechanism (or never) to be polled again. To keep the ability
// to request a later poll, call Clone during the Poll call and keep the
// result; Wake on a clone may then be called concurrently from any
// goroutine, any number of times, before or after the task completes.
// Every Waker obtained via Clone must eventually have Release called on it
// exactly once. Skipping it leaves the node's reference count permanently
// raised. Calling it twice is not detected in general: it corrupts the
// count, and aborts the process only when it drops the node's last
// reference while the task is still live.
type Waker interface {
	Wake()
	Clone() Waker
	Release()
}

// Parent is the ambient executor's own notification handle: the thing a
// Collection pings whenever any managed Task becomes ready to be polled
// again. It stands in for the "current task" accessor that a real executor
// provides; the core package never constructs one itself.
type Parent interface {
	Wake()
}

// ParentFunc adapts a plain function to satisfy [Parent].
type ParentFunc func()

// Wake calls f.
func (f ParentFunc) Wake() { f() }
