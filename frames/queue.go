package frames

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// Work is one frame's worth of recorded commands.
type Work func(ctx context.Context) error

// Queue executes work and signals fence with value once the work is done.
type Queue interface {
	Submit(ctx context.Context, work Work, fence Fence, value uint64) error
}

// Immediate runs work on the caller's goroutine. It is what initialization
// code uses before a WorkQueue exists.
type Immediate struct{}

func (Immediate) Submit(ctx context.Context, work Work, fence Fence, value uint64) error {
	if work != nil {
		if err := work(ctx); err != nil {
			return errors.Wrapf(err, "immediate work for fence value %d", value)
		}
	}
	fence.Signal(value)
	return nil
}

type submission struct {
	work  Work
	fence Fence
	value uint64
}

// WorkQueue executes submitted work in order on a single worker goroutine.
// The first failing item stops the worker; Close reports that error.
type WorkQueue struct {
	items chan submission
	group *errgroup.Group
	ctx   context.Context

	mu     sync.RWMutex
	closed bool
}

// NewWorkQueue starts the worker. depth bounds how many submissions may be
// pending before Submit blocks.
func NewWorkQueue(ctx context.Context, depth int) *WorkQueue {
	group, groupCtx := errgroup.WithContext(ctx)
	q := &WorkQueue{
		items: make(chan submission, depth),
		group: group,
		ctx:   groupCtx,
	}
	group.Go(q.run)
	return q
}

func (q *WorkQueue) run() error {
	for item := range q.items {
		if item.work != nil {
			if err := item.work(q.ctx); err != nil {
				return errors.Wrapf(err, "frame work for fence value %d", item.value)
			}
		}
		item.fence.Signal(item.value)
	}
	return nil
}

// Context is cancelled once the worker stops, whether from a failure or from
// the parent context. Waits on fences fed by this queue should use it.
func (q *WorkQueue) Context() context.Context {
	return q.ctx
}

func (q *WorkQueue) Submit(ctx context.Context, work Work, fence Fence, value uint64) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return errors.New("submit on closed work queue")
	}
	if err := q.ctx.Err(); err != nil {
		return errors.Wrap(err, "work queue stopped")
	}

	select {
	case q.items <- submission{work: work, fence: fence, value: value}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.ctx.Done():
		return errors.Wrap(q.ctx.Err(), "work queue stopped")
	}
}

// Close lets the worker drain what has been submitted and returns the first
// error it hit.
func (q *WorkQueue) Close() error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.items)
	}
	q.mu.Unlock()

	return q.group.Wait()
}
