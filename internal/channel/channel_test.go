package channel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestFIFO(t *testing.T) {
	c := New[int](4)
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		if err := c.Send(ctx, i); err != nil {
			t.Fatalf("Send(%d) failed: %v", i, err)
		}
	}
	for i := 0; i < 4; i++ {
		v, st := c.TryReceive()
		if st != Received || v != i {
			t.Fatalf("TryReceive() = (%d, %v), want (%d, received)", v, st, i)
		}
	}
	if _, st := c.TryReceive(); st != Empty {
		t.Errorf("expected empty, got %v", st)
	}
}

func TestDefaultCapacity(t *testing.T) {
	if got := New[int](0).Cap(); got != DefaultCapacity {
		t.Errorf("Cap() = %d, want %d", got, DefaultCapacity)
	}
}

// TestSendBlocksWhenFull verifies backpressure: the ninth send into a channel
// of capacity 8 waits until the consumer drains one value.
func TestSendBlocksWhenFull(t *testing.T) {
	c := New[int](8)
	ctx := context.Background()
	for i := 0; i < 8; i++ {
		if err := c.Send(ctx, i); err != nil {
			t.Fatalf("Send(%d) failed: %v", i, err)
		}
	}

	done := make(chan error, 1)
	go func() { done <- c.Send(ctx, 8) }()

	select {
	case err := <-done:
		t.Fatalf("Send returned %v while channel was full", err)
	case <-time.After(50 * time.Millisecond):
	}

	if v, st := c.TryReceive(); st != Received || v != 0 {
		t.Fatalf("TryReceive() = (%d, %v)", v, st)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Send failed: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Send still blocked after a value was drained")
	}

	if s := c.Stats(); s.Stalls != 1 || s.Sent != 9 {
		t.Errorf("Stats() = %+v, want 1 stall and 9 sent", s)
	}
}

func TestTryReceiveNeverBlocks(t *testing.T) {
	c := New[int](1)
	done := make(chan struct{})
	go func() {
		c.TryReceive()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("TryReceive blocked on an empty channel")
	}
}

func TestNoLossUnderConcurrency(t *testing.T) {
	const n = 5000
	c := New[int](8)
	ctx := context.Background()

	go func() {
		defer c.CloseSend()
		for i := 0; i < n; i++ {
			if err := c.Send(ctx, i); err != nil {
				t.Errorf("Send(%d) failed: %v", i, err)
				return
			}
		}
	}()

	next := 0
	deadline := time.After(5 * time.Second)
	for {
		v, st := c.TryReceive()
		switch st {
		case Received:
			if v != next {
				t.Fatalf("received %d, want %d", v, next)
			}
			next++
		case Empty:
			select {
			case <-deadline:
				t.Fatalf("timed out after %d values", next)
			default:
				time.Sleep(time.Microsecond)
			}
		case Closed:
			if next != n {
				t.Fatalf("closed after %d values, want %d", next, n)
			}
			return
		}
	}
}

func TestCloseSendDrainsThenReportsClosed(t *testing.T) {
	c := New[string](2)
	_ = c.Send(context.Background(), "a")
	c.CloseSend()
	c.CloseSend()

	if v, st := c.TryReceive(); st != Received || v != "a" {
		t.Fatalf("TryReceive() = (%q, %v)", v, st)
	}
	if _, st := c.TryReceive(); st != Closed {
		t.Errorf("expected closed, got %v", st)
	}
}

func TestCloseReceiveUnblocksSender(t *testing.T) {
	c := New[int](1)
	ctx := context.Background()
	_ = c.Send(ctx, 1)

	var wg sync.WaitGroup
	wg.Add(1)
	var err error
	go func() {
		defer wg.Done()
		err = c.Send(ctx, 2)
	}()

	time.Sleep(20 * time.Millisecond)
	c.CloseReceive()
	c.CloseReceive()
	wg.Wait()

	if !errors.Is(err, ErrClosed) {
		t.Errorf("Send() = %v, want ErrClosed", err)
	}
	if err := c.Send(ctx, 3); !errors.Is(err, ErrClosed) {
		t.Errorf("Send after close = %v, want ErrClosed", err)
	}
}

func TestSendHonorsContext(t *testing.T) {
	c := New[int](1)
	_ = c.Send(context.Background(), 1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := c.Send(ctx, 2); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Send() = %v, want deadline exceeded", err)
	}
}
