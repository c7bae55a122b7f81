package ui

import (
	"context"
	"errors"
	"testing"
)

func TestQueue_DrainRunsInOrder(t *testing.T) {
	q := NewQueue(4)
	var got []int
	for i := range 3 {
		if err := q.Post(context.Background(), func() { got = append(got, i) }); err != nil {
			t.Fatalf("Post returned error: %v", err)
		}
	}
	if n := q.Drain(); n != 3 {
		t.Fatalf("Drain = %d, want 3", n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("got = %v, want [0 1 2]", got)
		}
	}
}

func TestQueue_WaitDeliversTask(t *testing.T) {
	q := NewQueue(1)
	ran := false
	if err := q.Post(context.Background(), func() { ran = true }); err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
	msg, ok := q.Wait()().(taskMsg)
	if !ok {
		t.Fatalf("Wait delivered %T, want taskMsg", msg)
	}
	msg()
	if !ran {
		t.Fatal("task did not run")
	}
}

func TestQueue_PostAfterClose(t *testing.T) {
	q := NewQueue(1)
	q.Close()
	q.Close()
	if err := q.Post(context.Background(), func() {}); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("Post error = %v, want %v", err, ErrQueueClosed)
	}
	if msg := q.Wait()(); msg != nil {
		t.Fatalf("Wait after Close = %v, want nil", msg)
	}
}

func TestQueue_PostHonoursContext(t *testing.T) {
	q := NewQueue(1)
	if err := q.Post(context.Background(), func() {}); err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := q.Post(ctx, func() {}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Post error = %v, want %v", err, context.Canceled)
	}
}
