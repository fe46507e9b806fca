package forms

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-widgetdemo/pkg/validation"
)

// Values maps field names to raw input values.
type Values map[string]string

// Clone returns an independent copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Form is the state of one mounted form: the current values, the error map
// of the last validation pass and the info-panel toggle. It is safe for
// concurrent use.
type Form struct {
	def Definition

	mu          sync.Mutex
	values      Values
	result      validation.Result
	validated   bool
	infoVisible bool
	submitted   bool
}

// NewForm mounts def with blank values.
func NewForm(def Definition, prefill ...Values) *Form {
	values := make(Values, len(def.Fields))
	for _, name := range def.FieldNames() {
		values[name] = ""
	}
	for _, p := range prefill {
		for k, v := range p {
			values[k] = v
		}
	}
	return &Form{def: def, values: values}
}

// Definition returns the form's declaration.
func (f *Form) Definition() Definition {
	return f.def
}

// Set stores one field value. Unknown fields are rejected.
func (f *Form) Set(field, value string) error {
	if _, ok := f.def.Field(field); !ok {
		return fmt.Errorf("forms: %s has no field %q", f.def.Name, field)
	}
	f.mu.Lock()
	f.values[field] = value
	f.submitted = false
	f.mu.Unlock()
	return nil
}

// SetAll stores every declared field present in values and ignores the rest.
func (f *Form) SetAll(values map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, name := range f.def.FieldNames() {
		if v, ok := values[name]; ok {
			f.values[name] = v
		}
	}
	f.submitted = false
}

// Values returns a copy of the current values.
func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values.Clone()
}

// Validate recomputes the error map from the current values.
func (f *Form) Validate() validation.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *Form) validateLocked() validation.Result {
	f.result = f.def.Table().Validate(f.values)
	f.validated = true
	return f.result
}

// Errors returns the error map of the last validation pass, nil before the
// first pass.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.validated || len(f.result.Errors) == 0 {
		return nil
	}
	out := make(map[string]string, len(f.result.Errors))
	for k, v := range f.result.Errors {
		out[k] = v
	}
	return out
}

// ToggleInfo flips the info panel and returns its new visibility.
func (f *Form) ToggleInfo() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.infoVisible = !f.infoVisible
	return f.infoVisible
}

// SetInfoVisible forces the info panel visibility.
func (f *Form) SetInfoVisible(visible bool) {
	f.mu.Lock()
	f.infoVisible = visible
	f.mu.Unlock()
}

// InfoVisible reports whether the info panel is shown.
func (f *Form) InfoVisible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.infoVisible
}

// Submitted reports whether the last Submit delivered the values.
func (f *Form) Submitted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitted
}

// Submission is what a valid form hands to its sink.
type Submission struct {
	Form    string `json:"form"`
	Values  Values `json:"values"`
	Summary string `json:"summary"`
}

// Submit validates the current values and, when the verdict is valid,
// delivers them to sink. The validation result is returned either way; the
// error is non-nil only when delivery fails.
func (f *Form) Submit(ctx context.Context, sink Sink) (validation.Result, error) {
	f.mu.Lock()
	result := f.validateLocked()
	values := f.values.Clone()
	f.submitted = false
	f.mu.Unlock()

	if !result.Valid {
		return result, nil
	}

	submission := Submission{
		Form:    f.def.Name,
		Values:  values,
		Summary: Summarize(f.def, values),
	}
	if sink != nil {
		if err := sink.Deliver(ctx, submission); err != nil {
			return result, fmt.Errorf("forms: deliver %s: %w", f.def.Name, err)
		}
	}

	f.mu.Lock()
	f.submitted = true
	f.mu.Unlock()
	return result, nil
}

// Notice is the message shown after a valid submission.
func (f *Form) Notice() string {
	f.mu.Lock()
	values := f.values.Clone()
	submitted := f.submitted
	f.mu.Unlock()

	if !submitted {
		return ""
	}
	if summary := strings.TrimSpace(Summarize(f.def, values)); summary != "" {
		return summary
	}
	return f.def.Success
}
