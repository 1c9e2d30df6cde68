package stream

import (
	"context"
	"io"
	"sync"
)

// Channel is a bounded FIFO queue between exactly one producer and one consumer. Push blocks
// while the channel is full, Pop blocks while it is empty. Closing the channel marks the end of
// the stream: items pushed before Close are still delivered, after which Pop returns io.EOF
type Channel[T any] struct {
	mu       sync.Mutex
	notFull  sync.Cond
	notEmpty sync.Cond

	items []T
	head  int
	n     int

	closed bool
}

// NewChannel creates a channel holding at most capacity items (at least one)
func NewChannel[T any](capacity int) *Channel[T] {
	if capacity < 1 {
		capacity = 1
	}
	c := &Channel[T]{items: make([]T, capacity)}
	c.notFull.L = &c.mu
	c.notEmpty.L = &c.mu
	return c
}

// Push appends item to the channel, blocking while it is full. It fails with ErrClosed if the
// channel has been closed and with the context's error if ctx is done before space frees up
func (c *Channel[T]) Push(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.full() && !c.closed {
		defer c.wakeOnDone(ctx, &c.notFull)()
		for c.full() && !c.closed && ctx.Err() == nil {
			c.notFull.Wait()
		}
	}
	if c.closed {
		return ErrClosed
	}
	if c.full() {
		return ctx.Err()
	}

	c.items[(c.head+c.n)%len(c.items)] = item
	c.n++
	c.notEmpty.Signal()

	return nil
}

// Pop removes and returns the oldest item, blocking while the channel is empty. Once the
// channel is closed and drained, io.EOF is returned on every call. If ctx is done before an
// item arrives, the context's error is returned
func (c *Channel[T]) Pop(ctx context.Context) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if c.n == 0 && !c.closed {
		defer c.wakeOnDone(ctx, &c.notEmpty)()
		for c.n == 0 && !c.closed && ctx.Err() == nil {
			c.notEmpty.Wait()
		}
	}
	if c.n == 0 {
		if c.closed {
			return zero, io.EOF
		}
		return zero, ctx.Err()
	}

	item := c.items[c.head]
	c.items[c.head] = zero
	c.head = (c.head + 1) % len(c.items)
	c.n--
	c.notFull.Signal()

	return item, nil
}

// Close marks the end of the stream and wakes all blocked callers. It is idempotent
func (c *Channel[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.notFull.Broadcast()
	c.notEmpty.Broadcast()
}

// Len returns the number of buffered items
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// Cap returns the capacity of the channel
func (c *Channel[T]) Cap() int {
	return len(c.items)
}

func (c *Channel[T]) full() bool {
	return c.n == len(c.items)
}

// wakeOnDone arranges for cond to be broadcast once ctx is done. Must be called with c.mu held.
// The returned function stops the notification
func (c *Channel[T]) wakeOnDone(ctx context.Context, cond *sync.Cond) func() bool {
	if ctx.Done() == nil {
		return func() bool { return false }
	}
	return context.AfterFunc(ctx, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		cond.Broadcast()
	})
}
