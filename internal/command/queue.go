package command

import (
	"context"
	"errors"
	"sync/atomic"
)

// DefaultCapacity is the capacity of a command queue if none is configured
const DefaultCapacity = 10

// ErrQueueFull is returned by Send with DropIfFull when the queue has no space left. The value was discarded.
var ErrQueueFull = errors.New("queue full")

// Policy determines what Send does when the queue is full
type Policy int

const (
	// Block waits until the queue has space, or the context is canceled
	Block Policy = iota
	// DropIfFull discards the value if the queue is full
	DropIfFull
)

func (p Policy) String() string {
	if p == DropIfFull {
		return "drop-if-full"
	}
	return "block"
}

// Queue is a bounded FIFO queue. Any number of producers may Send to it. It is meant to be drained by a single consumer.
type Queue[T any] struct {
	name    string
	ch      chan T
	dropped atomic.Uint64
}

// New creates a Queue with the provided capacity. A capacity lower than one uses DefaultCapacity.
func New[T any](name string, capacity int) *Queue[T] {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Queue[T]{name: name, ch: make(chan T, capacity)}
}

// Send adds a value to the queue. If the queue is full, policy determines whether Send waits for space or drops the value.
func (q *Queue[T]) Send(ctx context.Context, value T, policy Policy) error {
	if policy == DropIfFull {
		select {
		case q.ch <- value:
			return nil
		default:
			q.dropped.Add(1)
			return ErrQueueFull
		}
	}
	select {
	case q.ch <- value:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryReceive returns the oldest value in the queue. It never blocks: if the queue is empty, it returns false.
func (q *Queue[T]) TryReceive() (T, bool) {
	select {
	case value := <-q.ch:
		return value, true
	default:
		var zero T
		return zero, false
	}
}

// Receive waits for the next value in the queue, or until the context is canceled
func (q *Queue[T]) Receive(ctx context.Context) (T, error) {
	select {
	case value := <-q.ch:
		return value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Name returns the name of the queue
func (q *Queue[T]) Name() string {
	return q.name
}

// Len returns the number of values waiting in the queue
func (q *Queue[T]) Len() int {
	return len(q.ch)
}

// Cap returns the capacity of the queue
func (q *Queue[T]) Cap() int {
	return cap(q.ch)
}

// Dropped returns the number of values discarded because the queue was full
func (q *Queue[T]) Dropped() uint64 {
	return q.dropped.Load()
}
