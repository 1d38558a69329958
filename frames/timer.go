package frames

import (
	"time"

	"github.com/loov/hrtime"
)

// Timer measures frame deltas and total running time, excluding time spent
// stopped.
type Timer struct {
	now func() time.Duration

	base    time.Duration
	prev    time.Duration
	curr    time.Duration
	delta   time.Duration
	paused  time.Duration
	stopAt  time.Duration
	stopped bool
}

func NewTimer() *Timer {
	t := &Timer{now: hrtime.Now}
	t.Reset()
	return t
}

func (t *Timer) Reset() {
	now := t.now()
	t.base = now
	t.prev = now
	t.curr = now
	t.delta = 0
	t.paused = 0
	t.stopAt = 0
	t.stopped = false
}

func (t *Timer) Tick() {
	if t.stopped {
		t.delta = 0
		return
	}

	t.curr = t.now()
	t.delta = t.curr - t.prev
	t.prev = t.curr
	if t.delta < 0 {
		t.delta = 0
	}
}

func (t *Timer) Stop() {
	if t.stopped {
		return
	}
	t.stopAt = t.now()
	t.stopped = true
}

func (t *Timer) Start() {
	if !t.stopped {
		return
	}
	start := t.now()
	t.paused += start - t.stopAt
	t.prev = start
	t.stopAt = 0
	t.stopped = false
}

// DeltaTime is the time between the last two ticks, in seconds.
func (t *Timer) DeltaTime() float32 {
	return float32(t.delta.Seconds())
}

// TotalTime is the time since Reset, not counting stopped periods, in seconds.
func (t *Timer) TotalTime() float32 {
	end := t.curr
	if t.stopped {
		end = t.stopAt
	}
	return float32((end - t.paused - t.base).Seconds())
}

func (t *Timer) Stopped() bool {
	return t.stopped
}
