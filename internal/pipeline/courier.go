// Package pipeline wires the four-stage producer/consumer ingestion
// pipeline: directory walker -> path filter -> loader -> writer, connected
// by bounded multi-producer/multi-consumer couriers, grounded in
// _examples/original_source/mains/findfire.c's Courier-based pipeline.
// Where the original hand-rolls registration counters over a condition
// variable, this package uses a buffered Go channel plus sync.WaitGroup
// counters for senders and receivers, in the idiom of
// _examples/chrissnell-remoteweather/internal/managers (context.Context +
// *sync.WaitGroup threaded through every stage).
package pipeline

import (
	"context"
	"sync"
)

// Courier is a bounded, multi-producer/multi-consumer FIFO of items of
// type T. Any number of stages may register as senders or receivers;
// the channel closes once every registered sender has called
// DoneSending, so the last receiver drains the channel and observes
// end-of-stream exactly like the original's courier_receive returning
// NULL. It also carries the run's context: if that context is canceled
// (a sibling stage failed), anything parked on WaitUntilReadyTo*, Send, or
// Receive unblocks immediately instead of waiting for channel closure to
// cascade through the pipeline.
type Courier[T any] struct {
	ctx context.Context
	ch  chan T

	senderWG   sync.WaitGroup
	receiverWG sync.WaitGroup

	mu          sync.Mutex
	cond        *sync.Cond
	senders     int
	doneSenders int
	receivers   int
	closed      bool
}

// NewCourier returns a Courier with the given channel capacity. Cancelling
// ctx unblocks any goroutine currently waiting on this courier.
func NewCourier[T any](ctx context.Context, capacity int) *Courier[T] {
	c := &Courier[T]{ctx: ctx, ch: make(chan T, capacity)}
	c.cond = sync.NewCond(&c.mu)
	go func() {
		<-ctx.Done()
		c.mu.Lock()
		c.cond.Broadcast()
		c.mu.Unlock()
	}()
	return c
}

// RegisterSender marks one more producer as intending to send on this
// courier. Must be called before that producer's first Send.
func (c *Courier[T]) RegisterSender() {
	c.mu.Lock()
	c.senders++
	c.mu.Unlock()
	c.senderWG.Add(1)
	c.cond.Broadcast()
}

// RegisterReceiver marks one more consumer as intending to receive from
// this courier.
func (c *Courier[T]) RegisterReceiver() {
	c.mu.Lock()
	c.receivers++
	c.mu.Unlock()
	c.receiverWG.Add(1)
	c.cond.Broadcast()
}

// WaitUntilReadyToSend blocks until at least one receiver has registered
// and the courier has not yet been closed for sending, so a producer
// started ahead of its downstream stage doesn't pile work up against a
// receiver that will never arrive. It returns false if the courier was
// closed, or the run's context was canceled, before a receiver showed up.
func (c *Courier[T]) WaitUntilReadyToSend() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.receivers == 0 && !c.closed && c.ctx.Err() == nil {
		c.cond.Wait()
	}
	return !c.closed && c.ctx.Err() == nil
}

// WaitUntilReadyToReceive blocks until at least one sender has registered
// and the courier has not yet been closed, so a consumer started ahead of
// its upstream stage doesn't spin against an empty channel that nothing
// will ever fill. It returns false if the courier was closed, or the run's
// context was canceled, before a sender showed up.
func (c *Courier[T]) WaitUntilReadyToReceive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.senders == 0 && !c.closed && c.ctx.Err() == nil {
		c.cond.Wait()
	}
	return c.senders > 0
}

// Send enqueues item and reports whether it was accepted. It returns false
// without blocking further once the courier has been closed for sending
// (every registered sender has called DoneSending) or the run's context is
// canceled, rather than panicking on a send to a closed channel or
// blocking forever past a sibling stage's failure. It otherwise blocks no
// longer than the channel's capacity-induced backpressure.
func (c *Courier[T]) Send(item T) (accepted bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.mu.Unlock()

	defer func() {
		if recover() != nil {
			accepted = false
		}
	}()

	select {
	case c.ch <- item:
		return true
	case <-c.ctx.Done():
		return false
	}
}

// Receive dequeues the next item. The second return value is false at
// end-of-stream, once every sender has called DoneSending and the channel
// has drained, or once the run's context is canceled — mirroring the
// original's NULL-on-end-of-stream courier_receive.
func (c *Courier[T]) Receive() (T, bool) {
	select {
	case item, ok := <-c.ch:
		return item, ok
	case <-c.ctx.Done():
		var zero T
		return zero, false
	}
}

// DoneSending marks one producer as finished. Once every registered
// sender has called DoneSending, the channel is closed.
func (c *Courier[T]) DoneSending() {
	c.mu.Lock()
	c.doneSenders++
	shouldClose := !c.closed && c.doneSenders >= c.senders
	if shouldClose {
		c.closed = true
	}
	c.mu.Unlock()

	if shouldClose {
		close(c.ch)
	}
	c.cond.Broadcast()
	c.senderWG.Done()
}

// DoneReceiving marks one consumer as finished draining this courier.
func (c *Courier[T]) DoneReceiving() {
	c.receiverWG.Done()
}

// WaitUntilDrained blocks until every registered receiver has called
// DoneReceiving, used by the driver to know when it is safe to close the
// store.
func (c *Courier[T]) WaitUntilDrained() {
	c.receiverWG.Wait()
}
