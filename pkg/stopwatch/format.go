package stopwatch

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Format renders d as MM:SS:mmm. Minutes are not wrapped at 60 and widen past
// two digits when needed; negative durations render as zero.
func Format(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	totalSeconds := ms / 1000
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d:%03d", minutes, seconds, millis)
}

// maxMillis is the longest display that still fits in a time.Duration.
const maxMillis = int64(math.MaxInt64 / time.Millisecond)

// Parse reads a MM:SS:mmm display value back into a duration.
func Parse(display string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(display), ":")
	if len(parts) != 3 {
		return 0, &ParseError{Input: display, Reason: "expected MM:SS:mmm"}
	}

	minutes, err := parseComponent(parts[0], 2, maxMillis/60000)
	if err != nil {
		return 0, &ParseError{Input: display, Reason: "minutes: " + err.Error()}
	}
	seconds, err := parseComponent(parts[1], 2, 59)
	if err != nil {
		return 0, &ParseError{Input: display, Reason: "seconds: " + err.Error()}
	}
	if len(parts[1]) != 2 {
		return 0, &ParseError{Input: display, Reason: "seconds: expected two digits"}
	}
	millis, err := parseComponent(parts[2], 3, 999)
	if err != nil {
		return 0, &ParseError{Input: display, Reason: "milliseconds: " + err.Error()}
	}
	if len(parts[2]) != 3 {
		return 0, &ParseError{Input: display, Reason: "milliseconds: expected three digits"}
	}

	total := (minutes*60+seconds)*1000 + millis
	if total > maxMillis {
		return 0, &ParseError{Input: display, Reason: "minutes: out of range"}
	}
	return time.Duration(total) * time.Millisecond, nil
}

func parseComponent(raw string, minWidth int, maxValue int64) (int64, error) {
	if len(raw) < minWidth {
		return 0, fmt.Errorf("expected at least %d digits", minWidth)
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("unexpected character %q", r)
		}
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if maxValue >= 0 && value > maxValue {
		return 0, fmt.Errorf("value %d exceeds %d", value, maxValue)
	}
	return value, nil
}

// ParseError reports a display value that is not MM:SS:mmm.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("stopwatch: parse %q: %s", e.Input, e.Reason)
}
