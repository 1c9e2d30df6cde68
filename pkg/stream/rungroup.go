package stream

import (
	"context"
	"runtime/debug"
	"sync"
)

// RunGroup runs a single worker goroutine and keeps its outcome: the error it returned (nil on
// success) or a *PanicError if it panicked. The outcome is stored exactly once, before Done is
// closed, and may be read any number of times afterwards
type RunGroup struct {
	once sync.Once
	wg   sync.WaitGroup
	done chan struct{}

	err error
}

// Run executes f inside a go routine. Only the first call has any effect
func (rg *RunGroup) Run(ctx context.Context, f func(ctx context.Context) error) {
	rg.once.Do(func() {
		rg.done = make(chan struct{})
		rg.wg.Add(1)
		go func() {
			defer rg.wg.Done()
			defer close(rg.done)

			rg.err = rg.protect(ctx, f)
		}()
	})
}

// protect guards workers that do not recover their own panics (pipeline workers already do so
// in workerStats.finish)
func (rg *RunGroup) protect(ctx context.Context, f func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return f(ctx)
}

// Wait blocks until the worker has returned and reports its outcome
func (rg *RunGroup) Wait() error {
	rg.wg.Wait()
	return rg.err
}

// Err reports the outcome without blocking. It returns nil while the worker is still running
func (rg *RunGroup) Err() error {
	if rg.done == nil {
		return nil
	}
	select {
	case <-rg.done:
		return rg.err
	default:
		return nil
	}
}

// Done returns a channel closed once the worker has returned
func (rg *RunGroup) Done() <-chan struct{} {
	return rg.done
}
