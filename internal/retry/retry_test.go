package retry

import (
	"context"
	"testing"
	"time"
)

func TestPoll_AcceptsImmediately(t *testing.T) {
	calls := 0
	got, ok := Poll(context.Background(), 10, time.Millisecond,
		func() int { calls++; return 77 },
		func(v int) bool { return v > 0 })

	if !ok || got != 77 {
		t.Errorf("Poll() = (%d, %v), want (77, true)", got, ok)
	}
	if calls != 1 {
		t.Errorf("Expected 1 read, got %d", calls)
	}
}

func TestPoll_RecoversAfterRetries(t *testing.T) {
	calls := 0
	got, ok := Poll(context.Background(), 10, time.Millisecond,
		func() int {
			calls++
			if calls < 4 {
				return 0
			}
			return 55
		},
		func(v int) bool { return v != 0 })

	if !ok || got != 55 {
		t.Errorf("Poll() = (%d, %v), want (55, true)", got, ok)
	}
	if calls != 4 {
		t.Errorf("Expected 4 reads, got %d", calls)
	}
}

func TestPoll_ExhaustsAttempts(t *testing.T) {
	calls := 0
	got, ok := Poll(context.Background(), 10, time.Millisecond,
		func() int { calls++; return 0 },
		func(v int) bool { return v != 0 })

	if ok {
		t.Error("Poll() accepted a value it should have rejected")
	}
	if got != 0 {
		t.Errorf("Poll() returned %d, want last read value 0", got)
	}
	if calls != 10 {
		t.Errorf("Expected 10 reads, got %d", calls)
	}
}

func TestPoll_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, ok := Poll(ctx, 100, time.Second,
		func() int { return 0 },
		func(v int) bool { return v != 0 })

	if ok {
		t.Error("Poll() succeeded after cancellation")
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Poll() blocked %v after cancellation", elapsed)
	}
}
