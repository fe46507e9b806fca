// Package wallclock implements the live clock widget: the current time as
// HH:MM:SS and the date as DD/MM/YYYY, both in a fixed regional location,
// refreshed once per second.
package wallclock

import (
	"context"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // the regional zone must resolve on hosts without zoneinfo

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/goliatone/go-widgetdemo/pkg/widget"
)

const (
	// DefaultInterval is the display refresh period.
	DefaultInterval = time.Second
	// DefaultLocation is the fixed regional zone of the display.
	DefaultLocation = "Europe/Paris"

	TimeLayout = "15:04:05"
	DateLayout = "02/01/2006"
)

// Reading is one published clock value.
type Reading struct {
	Now  time.Time `json:"-"`
	Zone string    `json:"zone"`
	Time string    `json:"time"`
	Date string    `json:"date"`
}

// NewReading formats now in loc.
func NewReading(now time.Time, loc *time.Location) Reading {
	return Reading{
		Now:  now,
		Zone: inLocation(now, loc).Location().String(),
		Time: FormatTime(now, loc),
		Date: FormatDate(now, loc),
	}
}

// LoadLocation resolves an IANA zone name, defaulting to DefaultLocation
// when name is blank.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultLocation
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("wallclock: load location %q: %w", name, err)
	}
	return loc, nil
}

// FormatTime renders t as HH:MM:SS in loc.
func FormatTime(t time.Time, loc *time.Location) string {
	return inLocation(t, loc).Format(TimeLayout)
}

// FormatDate renders t as DD/MM/YYYY in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	return inLocation(t, loc).Format(DateLayout)
}

func inLocation(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return t.In(loc)
}

// Option configures a Clock.
type Option func(*Clock)

// WithClock swaps the time source.
func WithClock(c clock.Clock) Option {
	return func(w *Clock) {
		if c != nil {
			w.clock = c
		}
	}
}

// WithLocation fixes the display zone.
func WithLocation(loc *time.Location) Option {
	return func(w *Clock) {
		if loc != nil {
			w.location = loc
		}
	}
}

// WithInterval overrides the refresh period.
func WithInterval(d time.Duration) Option {
	return func(w *Clock) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Clock) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Clock is one mounted clock widget.
type Clock struct {
	clock    clock.Clock
	location *time.Location
	interval time.Duration
	logger   *zap.Logger

	ticker  *widget.Ticker
	display *widget.Cell[Reading]
}

// New builds an unmounted clock. Without WithLocation the display uses
// DefaultLocation.
func New(options ...Option) (*Clock, error) {
	w := &Clock{
		clock:    clock.New(),
		interval: DefaultInterval,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	if w.location == nil {
		loc, err := LoadLocation(DefaultLocation)
		if err != nil {
			return nil, err
		}
		w.location = loc
	}

	ticker, err := widget.NewTicker(w.interval, w.tick, widget.WithClock(w.clock))
	if err != nil {
		return nil, fmt.Errorf("wallclock: %w", err)
	}
	w.ticker = ticker
	w.display = widget.NewCell(w.Read())
	return w, nil
}

// Location reports the display zone.
func (w *Clock) Location() *time.Location {
	return w.location
}

// Read formats the current instant.
func (w *Clock) Read() Reading {
	return w.reading(w.clock.Now())
}

func (w *Clock) reading(now time.Time) Reading {
	return NewReading(now, w.location)
}

// Start mounts the widget: it publishes the current reading and then one
// reading per tick until Stop or ctx ends. It reports false when already
// mounted.
func (w *Clock) Start(ctx context.Context) bool {
	if !w.ticker.Start(ctx) {
		return false
	}
	w.logger.Debug("clock mounted", zap.String("location", w.location.String()), zap.Duration("interval", w.interval))
	w.display.Set(w.Read())
	return true
}

// Stop unmounts the widget and releases its tick source.
func (w *Clock) Stop() {
	w.ticker.Stop()
}

// Close stops the widget and drops subscribers.
func (w *Clock) Close() {
	w.Stop()
	w.display.Reset()
}

// Subscribe registers fn for every published reading.
func (w *Clock) Subscribe(fn func(Reading)) (unsubscribe func()) {
	return w.display.Subscribe(fn)
}

// Latest returns the last published reading.
func (w *Clock) Latest() Reading {
	return w.display.Get()
}

func (w *Clock) tick(now time.Time) {
	w.display.Set(w.reading(now))
}
