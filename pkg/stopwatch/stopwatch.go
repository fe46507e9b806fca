package stopwatch

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/goliatone/go-widgetdemo/pkg/widget"
)

// DefaultInterval is the display refresh period while running.
const DefaultInterval = 10 * time.Millisecond

const (
	LabelStart = "Start"
	LabelStop  = "Stop"
)

// Snapshot is the observable state of a stopwatch at one instant.
type Snapshot struct {
	Elapsed time.Duration `json:"elapsed"`
	Running bool          `json:"running"`
	// Anchor is the wall-clock instant treated as elapsed zero for the current
	// run segment. It is zero until the first Start and after Reset.
	Anchor time.Time `json:"anchor"`
}

// Display renders the elapsed time as MM:SS:mmm.
func (s Snapshot) Display() string {
	return Format(s.Elapsed)
}

// ElapsedMilliseconds reports the elapsed time in whole milliseconds.
func (s Snapshot) ElapsedMilliseconds() int64 {
	return s.Elapsed.Milliseconds()
}

// Label is the caption of the start/stop toggle for this state.
func (s Snapshot) Label() string {
	if s.Running {
		return LabelStop
	}
	return LabelStart
}

// Class is the style hook of the start/stop toggle for this state.
func (s Snapshot) Class() string {
	if s.Running {
		return "stop"
	}
	return "start"
}

// Option configures a Stopwatch.
type Option func(*Stopwatch)

// WithClock swaps the wall clock.
func WithClock(c clock.Clock) Option {
	return func(s *Stopwatch) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithInterval overrides the tick period. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(s *Stopwatch) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithLogger attaches a logger for lifecycle events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Stopwatch) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Stopwatch accumulates running time across start/stop segments. It is safe
// for concurrent use.
type Stopwatch struct {
	clock    clock.Clock
	interval time.Duration
	logger   *zap.Logger

	// ops serialises Start/Stop/Reset/Close so the tick source always matches
	// the running flag. The tick goroutine never takes it.
	ops sync.Mutex

	mu      sync.Mutex
	elapsed time.Duration
	running bool
	anchor  time.Time
	closed  bool

	ticker  *widget.Ticker
	display *widget.Cell[Snapshot]
}

// New builds a stopped stopwatch at zero.
func New(options ...Option) *Stopwatch {
	s := &Stopwatch{
		clock:    clock.New(),
		interval: DefaultInterval,
		logger:   zap.NewNop(),
		display:  widget.NewCell(Snapshot{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	// interval is always positive here, so NewTicker cannot fail.
	ticker, err := widget.NewTicker(s.interval, s.tick, widget.WithClock(s.clock))
	if err != nil {
		panic(err)
	}
	s.ticker = ticker
	return s
}

// Interval reports the tick period.
func (s *Stopwatch) Interval() time.Duration {
	return s.interval
}

// Start begins a run segment anchored so that accumulated time carries over.
// It reports false when already running or closed.
func (s *Stopwatch) Start() bool {
	s.ops.Lock()
	defer s.ops.Unlock()
	return s.startLocked()
}

func (s *Stopwatch) startLocked() bool {
	s.mu.Lock()
	if s.running || s.closed {
		s.mu.Unlock()
		return false
	}
	s.anchor = s.clock.Now().Add(-s.elapsed)
	s.running = true
	snap := s.snapshotLocked(s.elapsed)
	s.mu.Unlock()

	s.ticker.Start(context.Background())
	s.logger.Debug("stopwatch started", zap.Duration("elapsed", snap.Elapsed), zap.Time("anchor", snap.Anchor))
	s.display.Set(snap)
	return true
}

// Stop ends the current run segment and freezes the elapsed time. It reports
// false when not running.
func (s *Stopwatch) Stop() bool {
	s.ops.Lock()
	defer s.ops.Unlock()
	return s.stopLocked()
}

func (s *Stopwatch) stopLocked() bool {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return false
	}
	s.elapsed = s.sinceAnchorLocked(s.clock.Now())
	s.running = false
	snap := s.snapshotLocked(s.elapsed)
	s.mu.Unlock()

	s.ticker.Stop()
	s.logger.Debug("stopwatch stopped", zap.Duration("elapsed", snap.Elapsed))
	s.display.Set(snap)
	return true
}

// Toggle starts a stopped stopwatch or stops a running one and returns the
// resulting state.
func (s *Stopwatch) Toggle() Snapshot {
	s.ops.Lock()
	defer s.ops.Unlock()

	if s.Running() {
		s.stopLocked()
	} else {
		s.startLocked()
	}
	return s.Snapshot()
}

// Reset cancels any tick and returns to zero, whatever the current state.
func (s *Stopwatch) Reset() {
	s.ops.Lock()
	defer s.ops.Unlock()

	s.mu.Lock()
	s.elapsed = 0
	s.running = false
	s.anchor = time.Time{}
	snap := s.snapshotLocked(0)
	s.mu.Unlock()

	s.ticker.Stop()
	s.logger.Debug("stopwatch reset")
	s.display.Set(snap)
}

// Close releases the tick source and drops subscribers. It is the teardown
// hook of the widget; a closed stopwatch keeps its last value and ignores
// Start.
func (s *Stopwatch) Close() {
	s.ops.Lock()
	defer s.ops.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.running {
		s.elapsed = s.sinceAnchorLocked(s.clock.Now())
		s.running = false
	}
	s.closed = true
	s.mu.Unlock()

	s.ticker.Stop()
	s.display.Reset()
	s.logger.Debug("stopwatch closed")
}

// Running reports whether a run segment is active.
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Elapsed returns the accumulated time, recomputed from the wall clock while
// running.
func (s *Stopwatch) Elapsed() time.Duration {
	return s.Snapshot().Elapsed
}

// Snapshot returns the current state.
func (s *Stopwatch) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := s.elapsed
	if s.running {
		elapsed = s.sinceAnchorLocked(s.clock.Now())
	}
	return s.snapshotLocked(elapsed)
}

// Subscribe registers fn for every state change and tick. The returned
// function removes the subscription.
func (s *Stopwatch) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return s.display.Subscribe(fn)
}

func (s *Stopwatch) tick(now time.Time) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.elapsed = s.sinceAnchorLocked(now)
	snap := s.snapshotLocked(s.elapsed)
	s.mu.Unlock()

	s.display.Set(snap)
}

// sinceAnchorLocked never goes below the last computed value, so a wall clock
// stepping backwards cannot make the display run in reverse.
func (s *Stopwatch) sinceAnchorLocked(now time.Time) time.Duration {
	elapsed := now.Sub(s.anchor).Truncate(time.Millisecond)
	if elapsed < s.elapsed {
		return s.elapsed
	}
	return elapsed
}

func (s *Stopwatch) snapshotLocked(elapsed time.Duration) Snapshot {
	return Snapshot{
		Elapsed: elapsed,
		Running: s.running,
		Anchor:  s.anchor,
	}
}
