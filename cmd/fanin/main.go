// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command fanin demonstrates wiring a futureset.Collection, the
// internal/drive synchronous driver, and internal/diag structured logging
// together over a handful of timer-backed demo tasks.
package main

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"code.hybscloud.com/futureset"
	"code.hybscloud.com/futureset/internal/diag"
	"code.hybscloud.com/futureset/internal/drive"
)

func newConsoleLogger() diag.Logger {
	return diag.NewStumpy()
}

// timerTask completes after a random short delay, standing in for any
// asynchronous operation that hands off to a background goroutine and
// expects to be woken later.
type timerTask struct {
	id      int
	delay   time.Duration
	started bool
	fired   atomic.Bool
}

func (t *timerTask) Poll(w futureset.Waker) (int, error, bool) {
	if t.fired.Load() {
		return t.id, nil, true
	}
	if !t.started {
		t.started = true
		clone := w.Clone()
		time.AfterFunc(t.delay, func() {
			t.fired.Store(true)
			clone.Wake()
			clone.Release()
		})
	}
	return 0, nil, false
}

func main() {
	c := futureset.New[int](futureset.WithLogger(newConsoleLogger()))

	for i := 1; i <= 8; i++ {
		delay := time.Duration(5+rand.Intn(40)) * time.Millisecond
		if err := c.Submit(&timerTask{id: i, delay: delay}); err != nil {
			fmt.Println("submit failed:", err)
			return
		}
	}

	results := make([]int, 0, 8)
	err := drive.RunToCompletion(stepper[int]{
		c: c,
		onReady: func(v int) {
			results = append(results, v)
			fmt.Println("completed task", v)
		},
	})
	if err != nil {
		fmt.Println("task error:", err)
		return
	}

	fmt.Println("all tasks completed, order:", results)
	c.Close()
}

// stepper adapts a Collection to drive.Waiter.
type stepper[T any] struct {
	c       *futureset.Collection[T]
	onReady func(T)
}

func (s stepper[T]) Step() (bool, error) {
	state, value, err := s.c.Poll(drive.Parent{})
	switch state {
	case futureset.Ready:
		s.onReady(value)
		return false, nil
	case futureset.Err:
		return false, err
	case futureset.Drained:
		return true, nil
	default: // futureset.NotReady
		return false, nil
	}
}
