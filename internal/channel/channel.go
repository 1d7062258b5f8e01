// Package channel is the bounded queue between the sorting goroutine and the
// render loop. Send blocks while the queue is full (backpressure); TryReceive
// never blocks. Batches are delivered in send order and never dropped.
package channel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// DefaultCapacity is the queue size used when none is configured.
const DefaultCapacity = 8

// ErrClosed is returned by Send once the receiving side has gone away.
var ErrClosed = errors.New("channel: receiver closed")

// Status is the outcome of TryReceive.
type Status uint8

const (
	// Received means a value was returned.
	Received Status = iota
	// Empty means nothing is queued right now.
	Empty
	// Closed means the sender is done and everything has been drained.
	Closed
)

func (s Status) String() string {
	switch s {
	case Received:
		return "received"
	case Empty:
		return "empty"
	default:
		return "closed"
	}
}

// Stats is a point-in-time copy of the channel counters.
type Stats struct {
	Sent     uint64
	Received uint64
	// Stalls counts sends that found the queue full and had to wait.
	Stalls uint64
}

// Channel is a single-producer single-consumer FIFO of fixed capacity.
type Channel[T any] struct {
	ch   chan T
	done chan struct{}

	sendOnce sync.Once
	recvOnce sync.Once

	sent     atomic.Uint64
	received atomic.Uint64
	stalls   atomic.Uint64
}

// New returns a channel holding at most capacity values; capacity < 1 uses
// DefaultCapacity.
func New[T any](capacity int) *Channel[T] {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Channel[T]{
		ch:   make(chan T, capacity),
		done: make(chan struct{}),
	}
}

// Cap returns the queue capacity.
func (c *Channel[T]) Cap() int { return cap(c.ch) }

// Len returns the number of queued values.
func (c *Channel[T]) Len() int { return len(c.ch) }

// Send enqueues v, waiting while the queue is full. It returns ErrClosed if
// the receiver has closed and ctx.Err() if ctx ends first. Send must not be
// called after CloseSend.
func (c *Channel[T]) Send(ctx context.Context, v T) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	select {
	case c.ch <- v:
		c.sent.Add(1)
		return nil
	default:
	}

	c.stalls.Add(1)
	select {
	case c.ch <- v:
		c.sent.Add(1)
		return nil
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryReceive returns the oldest queued value without waiting.
func (c *Channel[T]) TryReceive() (T, Status) {
	select {
	case v, ok := <-c.ch:
		if !ok {
			var zero T
			return zero, Closed
		}
		c.received.Add(1)
		return v, Received
	default:
		var zero T
		return zero, Empty
	}
}

// CloseSend marks the end of the stream. Values already queued stay
// receivable; after them TryReceive reports Closed. Safe to call more than
// once, so the producer can defer it.
func (c *Channel[T]) CloseSend() {
	c.sendOnce.Do(func() { close(c.ch) })
}

// CloseReceive tells the producer nobody is listening any more: pending and
// future Sends return ErrClosed. Safe to call more than once.
func (c *Channel[T]) CloseReceive() {
	c.recvOnce.Do(func() { close(c.done) })
}

// Stats returns the channel counters.
func (c *Channel[T]) Stats() Stats {
	return Stats{
		Sent:     c.sent.Load(),
		Received: c.received.Load(),
		Stalls:   c.stalls.Load(),
	}
}
