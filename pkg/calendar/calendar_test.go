package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate(" 2024-06-01 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("want %v, got %v", want, got)
	}

	for _, raw := range []string{"", "2023-02-30", "01/06/2024", "tomorrow"} {
		if _, err := ParseDate(raw); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", raw, err)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	cases := map[string]bool{
		"2024-06-01": true,  // Saturday
		"2024-06-02": true,  // Sunday
		"2024-06-03": false, // Monday
		"2024-06-07": false, // Friday
	}
	for raw, want := range cases {
		date, err := ParseDate(raw)
		if err != nil {
			t.Fatalf("parse %s: %v", raw, err)
		}
		if got := IsWeekend(date); got != want {
			t.Fatalf("IsWeekend(%s) = %v, want %v", raw, got, want)
		}
	}
}

func TestSelection_DisplayAndNotice(t *testing.T) {
	var sel Selection
	if sel.Display() != Placeholder {
		t.Fatalf("expected placeholder, got %q", sel.Display())
	}
	if _, ok := sel.Notice(); ok {
		t.Fatalf("expected no notice without a selection")
	}

	if err := sel.SelectValue("2024-06-01"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := sel.Display(); got != "June 1, 2024" {
		t.Fatalf("display: got %q", got)
	}
	if got := sel.Value(); got != "2024-06-01" {
		t.Fatalf("value: got %q", got)
	}
	notice, ok := sel.Notice()
	if !ok || notice != WeekendNotice {
		t.Fatalf("expected weekend notice, got %q (%v)", notice, ok)
	}

	if err := sel.SelectValue("2024-06-04"); err != nil {
		t.Fatalf("select weekday: %v", err)
	}
	if _, ok := sel.Notice(); ok {
		t.Fatalf("expected no notice on a Tuesday")
	}

	if err := sel.SelectValue("nope"); err == nil {
		t.Fatalf("expected parse error")
	}
	if got := sel.Value(); got != "2024-06-04" {
		t.Fatalf("failed select must keep previous value, got %q", got)
	}

	if err := sel.SelectValue(""); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := sel.Date(); ok {
		t.Fatalf("expected blank value to clear selection")
	}
}
