package widget

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// ErrInvalidInterval is returned when a ticker is built with a non-positive
// period.
var ErrInvalidInterval = errors.New("widget: tick interval must be positive")

// TickFunc receives the clock reading of each tick.
type TickFunc func(now time.Time)

// Ticker runs a TickFunc on a fixed period until it is stopped. A Ticker can
// be started again after Stop; each run owns its own goroutine.
type Ticker struct {
	clock    clock.Clock
	interval time.Duration
	fn       TickFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// TickerOption configures a Ticker.
type TickerOption func(*Ticker)

// WithClock swaps the time source, typically for clock.NewMock() in tests.
func WithClock(c clock.Clock) TickerOption {
	return func(t *Ticker) {
		if c != nil {
			t.clock = c
		}
	}
}

// NewTicker builds a stopped ticker.
func NewTicker(interval time.Duration, fn TickFunc, options ...TickerOption) (*Ticker, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	if fn == nil {
		return nil, errors.New("widget: tick func is required")
	}
	t := &Ticker{
		clock:    clock.New(),
		interval: interval,
		fn:       fn,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	return t, nil
}

// Interval reports the tick period.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Start begins ticking. It reports false when the ticker was already
// running. The run ends on Stop or when ctx is done.
func (t *Ticker) Start(ctx context.Context) bool {
	if ctx == nil {
		ctx = context.Background()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		return false
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	source := t.clock.Ticker(t.interval)

	t.cancel = cancel
	t.done = done

	go t.run(runCtx, source, done)
	return true
}

func (t *Ticker) run(ctx context.Context, source *clock.Ticker, done chan struct{}) {
	defer close(done)
	defer source.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-source.C:
			// Stop may race a pending tick; never call fn after cancellation.
			if ctx.Err() != nil {
				return
			}
			t.fn(now)
		}
	}
}

// Stop cancels the current run and waits for its goroutine to exit. It is a
// no-op on a stopped ticker. Stop must not be called from inside the
// TickFunc.
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// runDone returns a channel closed when the current run exits, or nil when
// the ticker is stopped.
func (t *Ticker) runDone() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}
