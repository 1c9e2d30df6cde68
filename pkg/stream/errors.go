package stream

import (
	"errors"
	"fmt"
)

// ErrClosed is returned when operating on a channel or pipeline that has been closed
var ErrClosed = errors.New("stream: closed")

// Direction denotes the data flow direction of a pipeline
type Direction string

// Pipeline directions
const (
	DirectionRead  Direction = "read"
	DirectionWrite Direction = "write"
)

// Operations during which a worker can fault
const (
	OpRead    = "read"
	OpWrite   = "write"
	OpClose   = "close"
	OpResolve = "resolve"
	OpLimit   = "limit"
)

// FaultError denotes a failure of the codec (or of a deferred chunk) observed by a pipeline
// worker
type FaultError struct {
	Direction Direction
	Op        string
	Err       error
}

func newFault(dir Direction, op string, err error) *FaultError {
	return &FaultError{Direction: dir, Op: op, Err: err}
}

// Error implements the error interface
func (e *FaultError) Error() string {
	return fmt.Sprintf("%s pipeline: %s failed: %v", e.Direction, e.Op, e.Err)
}

// Unwrap returns the underlying cause
func (e *FaultError) Unwrap() error {
	return e.Err
}

// PanicError wraps a panic recovered from a worker goroutine
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("worker panicked: %v", e.Value)
}

// Unwrap returns the panic value if it is an error
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
