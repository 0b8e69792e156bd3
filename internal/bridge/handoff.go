package bridge

import (
	"context"
	"sync"
)

// handoff carries exactly one value from a callback to the goroutine waiting
// on it. resolve never blocks, so a callback that fires after the waiter has
// gone is dropped.
type handoff[T any] struct {
	ch   chan T
	once sync.Once
}

func newHandoff[T any]() *handoff[T] {
	return &handoff[T]{ch: make(chan T, 1)}
}

// resolve delivers v. Only the first call has any effect; it reports whether
// this call was the one that delivered.
func (h *handoff[T]) resolve(v T) bool {
	delivered := false
	h.once.Do(func() {
		h.ch <- v
		delivered = true
	})
	return delivered
}

// wait blocks until resolve is called or ctx is done.
func (h *handoff[T]) wait(ctx context.Context) (T, error) {
	select {
	case v := <-h.ch:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
