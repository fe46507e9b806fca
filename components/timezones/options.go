package timezones

import "github.com/benbjohnson/clock"

type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

type Options struct {
	SearchParam     string
	LimitParam      string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode

	// Zones replaces the embedded list when non-nil.
	Zones []string
	// Clock supplies the instant used for offsets and option times.
	Clock clock.Clock
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		SearchParam:     "q",
		LimitParam:      "limit",
		DefaultLimit:    20,
		MaxLimit:        100,
		EmptySearchMode: EmptySearchNone,
		Clock:           clock.New(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 20
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 100
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = EmptySearchNone
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Zones != nil {
		opts.Zones = append([]string{}, opts.Zones...)
	}
	return opts
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		o.LimitParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		o.MaxLimit = limit
	}
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		o.EmptySearchMode = mode
	}
}

func WithZones(zones []string) OptionFn {
	return func(o *Options) {
		if zones == nil {
			o.Zones = nil
			return
		}
		o.Zones = append([]string{}, zones...)
	}
}

// WithClock swaps the time source, typically for clock.NewMock() in tests.
func WithClock(c clock.Clock) OptionFn {
	return func(o *Options) {
		o.Clock = c
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
