package roast

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoopOrder(t *testing.T) {
	l := NewLoop(0)
	var got []int
	for i := range 5 {
		l.Post(func() { got = append(got, i) })
	}
	if n := l.Drain(); n != 5 {
		t.Errorf("Drain() = %d, want 5", n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("tasks ran out of order: %v", got)
		}
	}
	if n := l.Drain(); n != 0 {
		t.Errorf("Drain() on empty loop = %d", n)
	}
}

func TestLoopRunOnceFromGoroutine(t *testing.T) {
	l := NewLoop(1)
	done := false
	go l.Post(func() { done = true })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := l.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	if !done {
		t.Error("posted task did not run")
	}
}

func TestLoopRunStopsOnCancel(t *testing.T) {
	l := NewLoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	l.Post(cancel)
	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
