package pipeline

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestCourierSingleProducerConsumer(t *testing.T) {
	c := NewCourier[int](context.Background(), 4)
	c.RegisterSender()
	c.RegisterReceiver()

	go func() {
		defer c.DoneSending()
		for i := 0; i < 5; i++ {
			c.Send(i)
		}
	}()

	got := 0
	for {
		_, ok := c.Receive()
		if !ok {
			break
		}
		got++
	}
	c.DoneReceiving()

	if got != 5 {
		t.Errorf("received %d items, want 5", got)
	}
}

func TestCourierClosesOnlyAfterLastSenderDone(t *testing.T) {
	c := NewCourier[int](context.Background(), 4)
	c.RegisterSender()
	c.RegisterSender()
	c.RegisterReceiver()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); defer c.DoneSending(); c.Send(1) }()
	go func() { defer wg.Done(); defer c.DoneSending(); c.Send(2) }()

	sum := 0
	for {
		v, ok := c.Receive()
		if !ok {
			break
		}
		sum += v
	}
	c.DoneReceiving()
	wg.Wait()

	if sum != 3 {
		t.Errorf("sum of received items = %d, want 3", sum)
	}
}

func TestCourierWaitUntilReadyToSendUnblocksOnReceiverRegistration(t *testing.T) {
	c := NewCourier[int](context.Background(), 1)
	c.RegisterSender()

	ready := make(chan bool, 1)
	go func() { ready <- c.WaitUntilReadyToSend() }()

	select {
	case <-ready:
		t.Fatal("WaitUntilReadyToSend returned before any receiver registered")
	case <-time.After(20 * time.Millisecond):
	}

	c.RegisterReceiver()

	select {
	case ok := <-ready:
		if !ok {
			t.Error("WaitUntilReadyToSend = false, want true once a receiver registered")
		}
	case <-time.After(time.Second):
		t.Fatal("WaitUntilReadyToSend never unblocked after a receiver registered")
	}

	c.DoneSending()
	c.DoneReceiving()
}

func TestCourierWaitUntilReadyToReceiveUnblocksOnSenderRegistration(t *testing.T) {
	c := NewCourier[int](context.Background(), 1)
	c.RegisterReceiver()

	ready := make(chan bool, 1)
	go func() { ready <- c.WaitUntilReadyToReceive() }()

	select {
	case <-ready:
		t.Fatal("WaitUntilReadyToReceive returned before any sender registered")
	case <-time.After(20 * time.Millisecond):
	}

	c.RegisterSender()

	select {
	case ok := <-ready:
		if !ok {
			t.Error("WaitUntilReadyToReceive = false, want true once a sender registered")
		}
	case <-time.After(time.Second):
		t.Fatal("WaitUntilReadyToReceive never unblocked after a sender registered")
	}

	c.DoneSending()
	c.DoneReceiving()
}

func TestCourierSendReturnsFalseAfterClosed(t *testing.T) {
	c := NewCourier[int](context.Background(), 1)
	c.RegisterSender()
	c.DoneSending()

	if ok := c.Send(1); ok {
		t.Error("Send on a closed courier = true, want false")
	}
}

func TestCourierMultiConsumerFanOut(t *testing.T) {
	c := NewCourier[int](context.Background(), 4)
	c.RegisterSender()

	const numReceivers = 3
	var total int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < numReceivers; i++ {
		c.RegisterReceiver()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer c.DoneReceiving()
			for {
				v, ok := c.Receive()
				if !ok {
					return
				}
				mu.Lock()
				total += v
				mu.Unlock()
			}
		}()
	}

	for i := 1; i <= 10; i++ {
		c.Send(i)
	}
	c.DoneSending()

	wg.Wait()

	if total != 55 {
		t.Errorf("total received across fanned-out consumers = %d, want 55", total)
	}
}
