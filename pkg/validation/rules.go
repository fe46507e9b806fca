package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrRequired      = errors.New("value is required")
	ErrTooShort      = errors.New("value is too short")
	ErrTooLong       = errors.New("value is too long")
	ErrContainsDigit = errors.New("value must not contain digits")
	ErrBeforeMinimum = errors.New("date is before the minimum")
	ErrOutOfRange    = errors.New("number is out of range")
	// ErrUnparseable marks KindParse failures.
	ErrUnparseable = errors.New("value cannot be parsed")
)

// DateLayout is the date format rules accept by default.
const DateLayout = "2006-01-02"

// Rule is a single named check over a raw field value.
type Rule struct {
	Name  string
	Check func(value string) error
}

// Apply runs the check. A rule without a check always passes.
func (r Rule) Apply(value string) error {
	if r.Check == nil {
		return nil
	}
	return r.Check(value)
}

// Required fails on blank values.
func Required() Rule {
	return Rule{
		Name: "required",
		Check: func(value string) error {
			if strings.TrimSpace(value) == "" {
				return ErrRequired
			}
			return nil
		},
	}
}

// Length bounds the number of characters (code points), inclusive on both
// ends. A non-positive max leaves the upper bound open.
func Length(minLength, maxLength int) Rule {
	return Rule{
		Name: "length",
		Check: func(value string) error {
			n := utf8.RuneCountInString(value)
			if n < minLength {
				return fmt.Errorf("%w: %d < %d", ErrTooShort, n, minLength)
			}
			if maxLength > 0 && n > maxLength {
				return fmt.Errorf("%w: %d > %d", ErrTooLong, n, maxLength)
			}
			return nil
		},
	}
}

// NoDigits fails when the value contains an ASCII digit.
func NoDigits() Rule {
	return Rule{
		Name: "nodigits",
		Check: func(value string) error {
			if strings.ContainsAny(value, "0123456789") {
				return ErrContainsDigit
			}
			return nil
		},
	}
}

// Date requires a YYYY-MM-DD calendar date on or after minDate. A zero minDate
// leaves the lower bound open.
func Date(minDate time.Time) Rule {
	return DateLayoutRule(DateLayout, minDate)
}

// DateLayoutRule is Date with a custom layout.
func DateLayoutRule(layout string, minDate time.Time) Rule {
	return Rule{
		Name: "date",
		Check: func(value string) error {
			parsed, err := time.Parse(layout, strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("%w: date %q", ErrUnparseable, value)
			}
			if !minDate.IsZero() && parsed.Before(minDate) {
				return fmt.Errorf("%w: %s < %s", ErrBeforeMinimum, parsed.Format(layout), minDate.Format(layout))
			}
			return nil
		},
	}
}

// IntRange requires a base-10 integer within [minValue, maxValue].
func IntRange(minValue, maxValue int) Rule {
	return Rule{
		Name: "int",
		Check: func(value string) error {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("%w: integer %q", ErrUnparseable, value)
			}
			if n < minValue || n > maxValue {
				return fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, n, minValue, maxValue)
			}
			return nil
		},
	}
}

// Func adapts an arbitrary check into a rule.
func Func(name string, check func(value string) error) Rule {
	return Rule{Name: name, Check: check}
}
