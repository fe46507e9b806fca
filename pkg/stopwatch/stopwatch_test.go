package stopwatch

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func newMocked(t *testing.T) (*Stopwatch, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	mock.Set(time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC))
	sw := New(WithClock(mock))
	t.Cleanup(sw.Close)
	return sw, mock
}

func TestStopwatch_StartsStoppedAtZero(t *testing.T) {
	sw, _ := newMocked(t)
	snap := sw.Snapshot()
	if snap.Running || snap.Elapsed != 0 {
		t.Fatalf("unexpected initial state: %+v", snap)
	}
	if snap.Display() != "00:00:000" || snap.Label() != LabelStart || snap.Class() != "start" {
		t.Fatalf("unexpected initial presentation: %s %s %s", snap.Display(), snap.Label(), snap.Class())
	}
	if sw.Interval() != DefaultInterval {
		t.Fatalf("expected default interval, got %v", sw.Interval())
	}
}

func TestStopwatch_StartTwiceKeepsAnchor(t *testing.T) {
	sw, mock := newMocked(t)

	if !sw.Start() {
		t.Fatalf("expected first start to succeed")
	}
	anchor := sw.Snapshot().Anchor

	mock.Add(250 * time.Millisecond)
	if sw.Start() {
		t.Fatalf("expected second start to be a no-op")
	}
	if got := sw.Snapshot().Anchor; !got.Equal(anchor) {
		t.Fatalf("anchor moved: want %v, got %v", anchor, got)
	}
}

func TestStopwatch_ElapsedFollowsWallClock(t *testing.T) {
	sw, mock := newMocked(t)
	sw.Start()

	mock.Add(1234 * time.Millisecond)
	if got := sw.Elapsed(); got != 1234*time.Millisecond {
		t.Fatalf("expected 1.234s, got %v", got)
	}
	if snap := sw.Snapshot(); snap.Label() != LabelStop || snap.Class() != "stop" {
		t.Fatalf("expected stop affordance while running, got %s/%s", snap.Label(), snap.Class())
	}
}

func TestStopwatch_StopFreezesElapsed(t *testing.T) {
	sw, mock := newMocked(t)
	sw.Start()
	mock.Add(2 * time.Second)

	if !sw.Stop() {
		t.Fatalf("expected stop to succeed")
	}
	frozen := sw.Elapsed()

	mock.Add(5 * time.Second)
	if got := sw.Elapsed(); got != frozen {
		t.Fatalf("elapsed changed while stopped: %v -> %v", frozen, got)
	}
	if sw.Stop() {
		t.Fatalf("expected second stop to be a no-op")
	}
}

func TestStopwatch_StopStartAccumulates(t *testing.T) {
	sw, mock := newMocked(t)

	sw.Start()
	mock.Add(1500 * time.Millisecond)
	sw.Stop()

	mock.Add(time.Hour) // paused time is not counted

	sw.Start()
	mock.Add(700 * time.Millisecond)
	sw.Stop()

	want := 2200 * time.Millisecond
	got := sw.Elapsed()
	if diff := got - want; diff < -sw.Interval() || diff > sw.Interval() {
		t.Fatalf("expected about %v, got %v", want, got)
	}
}

func TestStopwatch_ResetFromAnyState(t *testing.T) {
	sw, mock := newMocked(t)

	sw.Reset()
	if got := Format(sw.Elapsed()); got != "00:00:000" {
		t.Fatalf("reset while idle: got %s", got)
	}

	sw.Start()
	mock.Add(3 * time.Second)
	sw.Reset()
	if got := Format(sw.Elapsed()); got != "00:00:000" {
		t.Fatalf("reset while running: got %s", got)
	}
	if sw.Running() {
		t.Fatalf("expected stopped after reset")
	}

	mock.Add(3 * time.Second)
	if got := sw.Elapsed(); got != 0 {
		t.Fatalf("expected elapsed to stay zero after reset, got %v", got)
	}
}

func TestStopwatch_ToggleAlternates(t *testing.T) {
	sw, mock := newMocked(t)

	if snap := sw.Toggle(); !snap.Running {
		t.Fatalf("expected toggle to start")
	}
	mock.Add(40 * time.Millisecond)
	snap := sw.Toggle()
	if snap.Running {
		t.Fatalf("expected toggle to stop")
	}
	if snap.Elapsed != 40*time.Millisecond {
		t.Fatalf("expected 40ms, got %v", snap.Elapsed)
	}
}

func TestStopwatch_TicksPublishSnapshots(t *testing.T) {
	sw, mock := newMocked(t)

	ticks := make(chan Snapshot, 64)
	sw.Subscribe(func(s Snapshot) { ticks <- s })

	sw.Start()
	start := <-ticks
	if !start.Running {
		t.Fatalf("expected start publication, got %+v", start)
	}

	mock.Add(10 * time.Millisecond)
	select {
	case snap := <-ticks:
		if snap.Elapsed != 10*time.Millisecond {
			t.Fatalf("expected tick at 10ms, got %v", snap.Elapsed)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for tick")
	}
}

func TestStopwatch_CloseReleasesTicker(t *testing.T) {
	mock := clock.NewMock()
	sw := New(WithClock(mock), WithInterval(time.Second))

	var calls atomic.Int32
	sw.Subscribe(func(Snapshot) { calls.Add(1) })
	sw.Start()
	mock.Add(2 * time.Second)
	sw.Close()

	if sw.Running() {
		t.Fatalf("expected closed stopwatch to be stopped")
	}
	frozen := sw.Elapsed()
	if frozen != 2*time.Second {
		t.Fatalf("expected 2s at close, got %v", frozen)
	}

	before := calls.Load()
	mock.Add(5 * time.Second)
	if sw.Start() {
		t.Fatalf("expected start after close to be refused")
	}
	if calls.Load() != before {
		t.Fatalf("expected no publications after close")
	}
	sw.Close()
}
