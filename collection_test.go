// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package futureset_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/futureset"
)

// signalParent wakes a buffered channel, so a test goroutine can block
// until notified instead of busy-polling.
type signalParent struct {
	ch   chan struct{}
	woke int
	mu   sync.Mutex
}

func newSignalParent() *signalParent {
	return &signalParent{ch: make(chan struct{}, 1)}
}

func (p *signalParent) Wake() {
	p.mu.Lock()
	p.woke++
	p.mu.Unlock()
	select {
	case p.ch <- struct{}{}:
	default:
	}
}

func (p *signalParent) waitWoken(t *testing.T, timeout time.Duration) {
	t.Helper()
	select {
	case <-p.ch:
	case <-time.After(timeout):
		t.Fatal("timed out waiting to be woken")
	}
}

// readyTask completes with value on its first Poll call, with no waker
// involvement at all.
type readyTask struct{ value int }

func (r readyTask) Poll(futureset.Waker) (int, error, bool) { return r.value, nil, true }

func TestOrderedReadyFanIn(t *testing.T) {
	c := futureset.New[int]()
	require.NoError(t, c.Submit(readyTask{1}))
	require.NoError(t, c.Submit(readyTask{2}))
	require.NoError(t, c.Submit(readyTask{3}))
	require.Equal(t, 3, c.Len())

	parent := newSignalParent()
	got := make(map[int]bool)
	wantLen := []int{2, 1, 0}
	for i := range 3 {
		state, value, err := c.Poll(parent)
		require.Equal(t, futureset.Ready, state)
		require.NoError(t, err)
		got[value] = true
		require.Equal(t, wantLen[i], c.Len())
	}
	require.Equal(t, map[int]bool{1: true, 2: true, 3: true}, got)

	state, _, err := c.Poll(parent)
	require.Equal(t, futureset.Drained, state)
	require.NoError(t, err)
	require.True(t, c.IsEmpty())
}

// waitingTask stays NotReady until something external calls complete.
type waitingTask struct {
	mu    sync.Mutex
	waker futureset.Waker
	done  bool
	value int
	err   error
}

func (w *waitingTask) Poll(p futureset.Waker) (int, error, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		return w.value, w.err, true
	}
	if w.waker == nil {
		w.waker = p.Clone()
	}
	return 0, nil, false
}

func (w *waitingTask) complete(value int, err error) {
	w.mu.Lock()
	waker := w.waker
	w.waker = nil
	w.done = true
	w.value = value
	w.err = err
	w.mu.Unlock()
	if waker != nil {
		waker.Wake()
		waker.Release()
	}
}

func TestDelayedReadyViaExternalNotifier(t *testing.T) {
	c := futureset.New[int]()
	task := &waitingTask{}
	require.NoError(t, c.Submit(task))

	parent := newSignalParent()
	state, _, err := c.Poll(parent)
	require.Equal(t, futureset.NotReady, state)
	require.NoError(t, err)

	go func() {
		time.Sleep(5 * time.Millisecond)
		task.complete(99, nil)
	}()

	parent.waitWoken(t, time.Second)
	state, value, err := c.Poll(parent)
	require.Equal(t, futureset.Ready, state)
	require.NoError(t, err)
	require.Equal(t, 99, value)

	state, _, err = c.Poll(parent)
	require.Equal(t, futureset.Drained, state)
	require.NoError(t, err)
}

// selfWakingTask requests its own re-poll during the Poll call itself,
// before reporting NotReady, for a fixed number of rounds.
type selfWakingTask struct {
	rounds int
	value  int
}

func (s *selfWakingTask) Poll(w futureset.Waker) (int, error, bool) {
	if s.rounds <= 0 {
		return s.value, nil, true
	}
	s.rounds--
	w.Wake()
	return 0, nil, false
}

func TestNotifyDuringPoll(t *testing.T) {
	c := futureset.New[int]()
	task := &selfWakingTask{rounds: 3, value: 7}
	require.NoError(t, c.Submit(task))

	parent := newSignalParent()
	// A single Poll call's internal loop must keep revisiting the node
	// since QUEUED is cleared before each Poll(w) call, without any
	// external Wake ever firing.
	state, value, err := c.Poll(parent)
	require.Equal(t, futureset.Ready, state)
	require.NoError(t, err)
	require.Equal(t, 7, value)
	// Each self-Wake wins the QUEUED 0->1 transition (the flag is cleared
	// before every task poll), so each one enqueues the node and signals
	// the parent, even though all three land inside the same Poll call
	// that ends up resolving the task.
	require.Equal(t, 3, parent.woke)
}

func TestCancellationViaClose(t *testing.T) {
	const n = 1000
	c := futureset.New[int]()
	tasks := make([]*waitingTask, n)
	for i := range tasks {
		tasks[i] = &waitingTask{}
		require.NoError(t, c.Submit(tasks[i]))
	}

	parent := newSignalParent()
	state, _, err := c.Poll(parent)
	require.Equal(t, futureset.NotReady, state)
	require.NoError(t, err)
	for _, task := range tasks {
		task.mu.Lock()
		require.NotNil(t, task.waker)
		task.mu.Unlock()
	}

	c.Close()
	require.Equal(t, 0, c.Len())

	// Notifiers firing after Close must not double-free or panic, even
	// though the node they point at has already been released.
	for _, task := range tasks {
		task.mu.Lock()
		waker := task.waker
		task.mu.Unlock()
		waker.Wake()
		waker.Release()
	}

	// Closing twice is a no-op.
	c.Close()
}

func TestSubmitZeroComputationsIsImmediatelyDrained(t *testing.T) {
	c := futureset.New[string]()
	state, _, err := c.Poll(newSignalParent())
	require.Equal(t, futureset.Drained, state)
	require.NoError(t, err)
}

func TestAlreadyCompleteOnFirstPoll(t *testing.T) {
	c := futureset.New[int]()
	require.NoError(t, c.Submit(readyTask{42}))
	state, value, err := c.Poll(newSignalParent())
	require.Equal(t, futureset.Ready, state)
	require.NoError(t, err)
	require.Equal(t, 42, value)
}

func TestNWakesBeforePollCauseOneEnqueue(t *testing.T) {
	c := futureset.New[int]()
	task := &waitingTask{}
	require.NoError(t, c.Submit(task))

	parent := newSignalParent()
	state, _, _ := c.Poll(parent) // clones task.waker
	require.Equal(t, futureset.NotReady, state)

	task.mu.Lock()
	waker := task.waker
	task.mu.Unlock()

	clone := waker.Clone()
	for range 5 {
		clone.Wake()
	}
	clone.Release()

	// Regardless of how many times Wake fired, the node is enqueued at
	// most once: only the Wake that enqueues it signals the parent.
	require.Equal(t, 1, parent.woke)

	// The single queued entry then yields the value, and the collection
	// drains.
	task.complete(1, nil)
	state, value, err := c.Poll(parent)
	require.Equal(t, futureset.Ready, state)
	require.NoError(t, err)
	require.Equal(t, 1, value)

	state, _, err = c.Poll(parent)
	require.Equal(t, futureset.Drained, state)
	require.NoError(t, err)
}

func TestSubmitAfterCloseReturnsError(t *testing.T) {
	c := futureset.New[int]()
	c.Close()
	err := c.Submit(readyTask{1})
	require.ErrorIs(t, err, futureset.ErrCollectionClosed)
}
