package engine

import (
	"context"
	"sync"
)

// Throttle bounds how many transform invocations run at once. Tokens are
// returned on Release; Acquire blocks until one is free or ctx ends.
type Throttle struct {
	mu     sync.Mutex
	cond   *sync.Cond
	tokens int
	closed bool
}

func NewThrottle(capacity int) *Throttle {
	t := &Throttle{tokens: capacity}
	t.cond = sync.NewCond(&t.mu)
	return t
}

func (t *Throttle) Acquire(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { t.cond.Broadcast() })
	defer stop()

	t.mu.Lock()
	for t.tokens == 0 && !t.closed && ctx.Err() == nil {
		t.cond.Wait()
	}
	defer t.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.closed {
		return context.Canceled
	}
	t.tokens--
	return nil
}

func (t *Throttle) Release() {
	t.mu.Lock()
	t.tokens++
	t.mu.Unlock()
	t.cond.Broadcast()
}

func (t *Throttle) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	t.cond.Broadcast()
}
