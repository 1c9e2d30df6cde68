package stream

import (
	"context"
	"errors"
	"sync"
)

// ErrPromiseSettled is returned when fulfilling or failing a promise a second time
var ErrPromiseSettled = errors.New("stream: promise already settled")

// DeferredChunk resolves to a chunk of data once some asynchronous encoding step completes
type DeferredChunk interface {

	// Resolve blocks until the chunk is available, the producing step failed or ctx is done
	Resolve(ctx context.Context) ([]byte, error)
}

// Promise is a one-shot DeferredChunk settled by whoever computes the data
type Promise struct {
	once sync.Once
	done chan struct{}

	data []byte
	err  error
}

// NewPromise creates an unsettled promise
func NewPromise() *Promise {
	return &Promise{done: make(chan struct{})}
}

// Fulfill settles the promise with data. The promise takes ownership of data
func (p *Promise) Fulfill(data []byte) error {
	return p.settle(data, nil)
}

// Fail settles the promise with an error
func (p *Promise) Fail(err error) error {
	if err == nil {
		err = errors.New("promise failed without a cause")
	}
	return p.settle(nil, err)
}

func (p *Promise) settle(data []byte, err error) error {
	settled := false
	p.once.Do(func() {
		p.data, p.err = data, err
		close(p.done)
		settled = true
	})
	if !settled {
		return ErrPromiseSettled
	}
	return nil
}

// Resolve implements DeferredChunk
func (p *Promise) Resolve(ctx context.Context) ([]byte, error) {
	select {
	case <-p.done:
		return p.data, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Ready is an already resolved DeferredChunk
type Ready []byte

// Resolve implements DeferredChunk
func (r Ready) Resolve(context.Context) ([]byte, error) {
	return r, nil
}

// Func adapts a function computing a chunk to a DeferredChunk. The function runs on the
// resolving goroutine
type Func func(ctx context.Context) ([]byte, error)

// Resolve implements DeferredChunk
func (f Func) Resolve(ctx context.Context) ([]byte, error) {
	return f(ctx)
}
