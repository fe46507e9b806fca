// Package calendar holds the date-picker page logic. Picking itself belongs to
// the browser's native date input; this package parses what it submits,
// renders the selection in the picker's display format and decides whether
// the weekend notice is shown.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// InputLayout is the value format submitted by a native date input.
	InputLayout = "2006-01-02"
	// DisplayLayout mirrors the picker's "MMMM d, yyyy" display format.
	DisplayLayout = "January 2, 2006"
	// Placeholder is shown while nothing is selected.
	Placeholder = "Select a date"
	// WeekendNotice is the static message shown for a Saturday or Sunday.
	WeekendNotice = "Cette prochaine date est bien"
)

// ErrInvalidDate reports a value that is not a calendar date.
var ErrInvalidDate = errors.New("calendar: invalid date")

// ParseDate reads a YYYY-MM-DD value. Out-of-range days such as 2023-02-30
// are rejected rather than normalised.
func ParseDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}
	date, err := time.Parse(InputLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, trimmed)
	}
	return date, nil
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// Selection is the state of one mounted picker.
type Selection struct {
	date *time.Time
}

// Select stores date as the picked value.
func (s *Selection) Select(date time.Time) {
	d := date
	s.date = &d
}

// SelectValue parses and stores a submitted input value. A blank value clears
// the selection.
func (s *Selection) SelectValue(raw string) error {
	if strings.TrimSpace(raw) == "" {
		s.Clear()
		return nil
	}
	date, err := ParseDate(raw)
	if err != nil {
		return err
	}
	s.Select(date)
	return nil
}

// Clear drops the selection.
func (s *Selection) Clear() {
	s.date = nil
}

// Date returns the selection, if any.
func (s Selection) Date() (time.Time, bool) {
	if s.date == nil {
		return time.Time{}, false
	}
	return *s.date, true
}

// Value renders the selection as an input value, or "" when empty.
func (s Selection) Value() string {
	if s.date == nil {
		return ""
	}
	return s.date.Format(InputLayout)
}

// Display renders the selection in DisplayLayout, or the placeholder.
func (s Selection) Display() string {
	if s.date == nil {
		return Placeholder
	}
	return s.date.Format(DisplayLayout)
}

// Notice returns the weekend notice when the selection is a weekend day.
func (s Selection) Notice() (string, bool) {
	if s.date == nil || !IsWeekend(*s.date) {
		return "", false
	}
	return WeekendNotice, true
}
