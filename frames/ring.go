package frames

import (
	"context"

	"github.com/cockroachdb/errors"
)

// Frame is one resource set of the ring. Fence holds the fence value that
// marks the last work submitted against it; zero means never submitted.
type Frame[T any] struct {
	Index    int
	Fence    uint64
	Resource T
}

// Ring hands out its frames round-robin.
type Ring[T any] struct {
	frames  []*Frame[T]
	fence   Fence
	current uint64
	index   int
}

// NewRing builds n frames with build. The first call to Next returns frame 0.
func NewRing[T any](n int, fence Fence, build func(index int) (T, error)) (*Ring[T], error) {
	if n < 1 {
		return nil, errors.Newf("frame ring needs at least one frame, got %d", n)
	}
	if fence == nil {
		return nil, errors.New("frame ring needs a fence")
	}

	r := &Ring[T]{
		frames: make([]*Frame[T], 0, n),
		fence:  fence,
		index:  n - 1,
	}
	for i := 0; i < n; i++ {
		res, err := build(i)
		if err != nil {
			return nil, errors.Wrapf(err, "building frame resource %d", i)
		}
		r.frames = append(r.frames, &Frame[T]{Index: i, Resource: res})
	}
	return r, nil
}

func (r *Ring[T]) Len() int {
	return len(r.frames)
}

// Index is the position of the frame most recently returned by Next.
func (r *Ring[T]) Index() int {
	return r.index
}

func (r *Ring[T]) Current() *Frame[T] {
	return r.frames[r.index]
}

// Frames exposes every frame of the ring, in ring order.
func (r *Ring[T]) Frames() []*Frame[T] {
	return r.frames
}

// FenceValue is the last value handed to Submit.
func (r *Ring[T]) FenceValue() uint64 {
	return r.current
}

// Next advances to the next frame. It blocks only while the work last
// submitted against that frame is still pending. If ctx ends first the ring
// does not advance.
func (r *Ring[T]) Next(ctx context.Context) (*Frame[T], error) {
	next := (r.index + 1) % len(r.frames)
	frame := r.frames[next]

	if frame.Fence != 0 && r.fence.Completed() < frame.Fence {
		if err := r.fence.Wait(ctx, frame.Fence); err != nil {
			return nil, errors.Wrapf(err, "waiting on frame resource %d (fence value %d)", next, frame.Fence)
		}
	}

	r.index = next
	return frame, nil
}

// Submit hands work for frame to queue and tags the frame with a new fence
// value.
func (r *Ring[T]) Submit(ctx context.Context, queue Queue, frame *Frame[T], work Work) error {
	value := r.current + 1
	if err := queue.Submit(ctx, work, r.fence, value); err != nil {
		return errors.Wrapf(err, "submitting frame resource %d", frame.Index)
	}

	r.current = value
	frame.Fence = value
	return nil
}

// Wait blocks until the work last submitted against frame has finished.
func (r *Ring[T]) Wait(ctx context.Context, frame *Frame[T]) error {
	if frame.Fence == 0 {
		return nil
	}
	return r.fence.Wait(ctx, frame.Fence)
}

// Flush blocks until everything submitted so far has finished.
func (r *Ring[T]) Flush(ctx context.Context) error {
	if r.current == 0 {
		return nil
	}
	return errors.Wrap(r.fence.Wait(ctx, r.current), "flushing frame ring")
}
