package widget

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func waitTick(t *testing.T, ch <-chan time.Time) time.Time {
	t.Helper()
	select {
	case now := <-ch:
		return now
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for tick")
		return time.Time{}
	}
}

func TestNewTicker_RejectsInvalidInterval(t *testing.T) {
	_, err := NewTicker(0, func(time.Time) {})
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
	if _, err := NewTicker(time.Second, nil); err == nil {
		t.Fatalf("expected error for nil tick func")
	}
}

func TestTicker_DeliversClockReadings(t *testing.T) {
	mock := clock.NewMock()
	ticks := make(chan time.Time, 16)

	ticker, err := NewTicker(10*time.Millisecond, func(now time.Time) { ticks <- now }, WithClock(mock))
	if err != nil {
		t.Fatalf("new ticker: %v", err)
	}
	start := mock.Now()
	if !ticker.Start(context.Background()) {
		t.Fatalf("expected first start to succeed")
	}
	defer ticker.Stop()

	mock.Add(10 * time.Millisecond)
	got := waitTick(t, ticks)
	if want := start.Add(10 * time.Millisecond); !got.Equal(want) {
		t.Fatalf("tick time mismatch: want %v, got %v", want, got)
	}
}

func TestTicker_StartTwiceIsNoop(t *testing.T) {
	mock := clock.NewMock()
	ticker, err := NewTicker(time.Second, func(time.Time) {}, WithClock(mock))
	if err != nil {
		t.Fatalf("new ticker: %v", err)
	}
	defer ticker.Stop()

	if !ticker.Start(context.Background()) {
		t.Fatalf("expected start")
	}
	if ticker.Start(context.Background()) {
		t.Fatalf("expected second start to report false")
	}
	if ticker.runDone() == nil {
		t.Fatalf("expected a run in progress")
	}
}

func TestTicker_StopReleasesTickSource(t *testing.T) {
	mock := clock.NewMock()
	var count atomic.Int64
	ticks := make(chan time.Time, 16)

	ticker, err := NewTicker(time.Second, func(now time.Time) {
		count.Add(1)
		ticks <- now
	}, WithClock(mock))
	if err != nil {
		t.Fatalf("new ticker: %v", err)
	}

	ticker.Start(context.Background())
	mock.Add(time.Second)
	waitTick(t, ticks)

	ticker.Stop()
	if ticker.runDone() != nil {
		t.Fatalf("expected nil done channel after stop")
	}

	before := count.Load()
	mock.Add(5 * time.Second)
	if after := count.Load(); after != before {
		t.Fatalf("expected no ticks after stop, got %d more", after-before)
	}

	// Stopping twice is harmless.
	ticker.Stop()
}

func TestTicker_ContextCancellationEndsRun(t *testing.T) {
	mock := clock.NewMock()
	ticker, err := NewTicker(time.Second, func(time.Time) {}, WithClock(mock))
	if err != nil {
		t.Fatalf("new ticker: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ticker.Start(ctx)
	done := ticker.runDone()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not exit after context cancellation")
	}
	ticker.Stop()
}

func TestTicker_RestartAfterStop(t *testing.T) {
	mock := clock.NewMock()
	ticks := make(chan time.Time, 16)
	ticker, err := NewTicker(time.Second, func(now time.Time) { ticks <- now }, WithClock(mock))
	if err != nil {
		t.Fatalf("new ticker: %v", err)
	}

	ticker.Start(context.Background())
	ticker.Stop()
	if !ticker.Start(context.Background()) {
		t.Fatalf("expected restart to succeed")
	}
	defer ticker.Stop()

	mock.Add(time.Second)
	waitTick(t, ticks)
}
