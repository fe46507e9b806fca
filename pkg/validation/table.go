package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

// Kind classifies a field failure.
type Kind string

const (
	KindValidation Kind = "validation"
	KindParse      Kind = "parse"
)

// FieldError is the failure of one field.
type FieldError struct {
	Field   string
	Message string
	Kind    Kind
	Rule    string
	Err     error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Constraint lists the rules of one field. The field fails on its first
// failing rule. Message, when set, replaces the rule's own error text.
// Optional constraints skip their rules on blank values.
type Constraint struct {
	Field    string
	Label    string
	Optional bool
	Rules    []Rule
	Message  string
}

func (c Constraint) check(value string) *FieldError {
	if c.Optional && strings.TrimSpace(value) == "" {
		return nil
	}
	for _, rule := range c.Rules {
		err := rule.Apply(value)
		if err == nil {
			continue
		}
		kind := KindValidation
		if errors.Is(err, ErrUnparseable) {
			kind = KindParse
		}
		message := strings.TrimSpace(c.Message)
		if message == "" {
			message = err.Error()
		}
		return &FieldError{
			Field:   c.Field,
			Message: message,
			Kind:    kind,
			Rule:    rule.Name,
			Err:     err,
		}
	}
	return nil
}

// Table is an ordered constraint set.
type Table []Constraint

// Fields lists the constrained field names in table order.
func (t Table) Fields() []string {
	out := make([]string, 0, len(t))
	for _, c := range t {
		out = append(out, c.Field)
	}
	return out
}

// Lookup returns the constraint for field.
func (t Table) Lookup(field string) (Constraint, bool) {
	for _, c := range t {
		if c.Field == field {
			return c, true
		}
	}
	return Constraint{}, false
}

// Validate checks every constraint against values. Missing values are
// checked as blank. The result is computed from scratch on every call.
func (t Table) Validate(values map[string]string) Result {
	result := Result{Valid: true}
	for _, c := range t {
		failure := c.check(values[c.Field])
		if failure == nil {
			continue
		}
		result.Valid = false
		if result.Errors == nil {
			result.Errors = make(map[string]string)
		}
		result.Errors[c.Field] = failure.Message
		result.Failures = append(result.Failures, failure)
	}
	return result
}

// Result is the outcome of one validation pass.
type Result struct {
	Valid bool
	// Errors maps each failing field to its message. Passing fields are
	// absent; the map is nil when Valid.
	Errors map[string]string
	// Failures holds the same failures in table order with their kinds.
	Failures []*FieldError
}

// Message returns the error message for field, if it failed.
func (r Result) Message(field string) (string, bool) {
	msg, ok := r.Errors[field]
	return msg, ok
}

// Failed lists the failing fields in table order.
func (r Result) Failed() []string {
	out := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		out = append(out, f.Field)
	}
	return out
}

// Err combines the failures into one error, or returns nil when valid.
// multierr.Errors recovers the individual *FieldError values.
func (r Result) Err() error {
	var err error
	for _, f := range r.Failures {
		err = multierr.Append(err, f)
	}
	return err
}

// ErrorList returns the errors map as sorted "field: message" lines.
func (r Result) ErrorList() []string {
	if len(r.Errors) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Errors))
	for field, msg := range r.Errors {
		out = append(out, field+": "+msg)
	}
	sort.Strings(out)
	return out
}
