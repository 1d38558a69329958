// Package frames keeps a small ring of per-frame resource sets so the CPU can
// prepare frame N+1 while frame N is still being consumed, blocking only when
// it comes back round to a set whose work has not finished.
package frames

import (
	"context"
	"sync"
)

// Fence is a monotonically increasing completion marker. Signal raises the
// completed value; values lower than the current one are ignored.
type Fence interface {
	Completed() uint64
	Wait(ctx context.Context, value uint64) error
	Signal(value uint64)
}

type fenceWaiter struct {
	value uint64
	done  chan struct{}
}

// TimelineFence is a Fence signalled from the CPU.
type TimelineFence struct {
	mu        sync.Mutex
	completed uint64
	waiters   []*fenceWaiter
}

func NewTimelineFence() *TimelineFence {
	return &TimelineFence{}
}

func (f *TimelineFence) Completed() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.completed
}

func (f *TimelineFence) Signal(value uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if value <= f.completed {
		return
	}
	f.completed = value

	remaining := f.waiters[:0]
	for _, w := range f.waiters {
		if w.value <= value {
			close(w.done)
		} else {
			remaining = append(remaining, w)
		}
	}
	f.waiters = remaining
}

// Wait blocks until the fence reaches value or ctx is done.
func (f *TimelineFence) Wait(ctx context.Context, value uint64) error {
	f.mu.Lock()
	if f.completed >= value {
		f.mu.Unlock()
		return nil
	}
	w := &fenceWaiter{value: value, done: make(chan struct{})}
	f.waiters = append(f.waiters, w)
	f.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		f.removeWaiter(w)
		return ctx.Err()
	}
}

func (f *TimelineFence) removeWaiter(target *fenceWaiter) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, w := range f.waiters {
		if w == target {
			f.waiters = append(f.waiters[:i], f.waiters[i+1:]...)
			return
		}
	}
}
