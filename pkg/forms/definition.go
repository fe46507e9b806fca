package forms

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-widgetdemo/pkg/validation"
)

// FieldType selects the input control of a field.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeDate     FieldType = "date"
	FieldTypeNumber   FieldType = "number"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTextArea FieldType = "textarea"
)

func (t FieldType) valid() bool {
	switch t {
	case FieldTypeText, FieldTypeDate, FieldTypeNumber, FieldTypeEmail, FieldTypeTextArea:
		return true
	default:
		return false
	}
}

// Field declares one input and its constraint.
type Field struct {
	Name        string            `yaml:"name" json:"name"`
	Label       string            `yaml:"label" json:"label"`
	Type        FieldType         `yaml:"type" json:"type"`
	Placeholder string            `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Required    bool              `yaml:"required,omitempty" json:"required,omitempty"`
	Optional    bool              `yaml:"optional,omitempty" json:"optional,omitempty"`
	MinLength   int               `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	MaxLength   int               `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	NoDigits    bool              `yaml:"noDigits,omitempty" json:"noDigits,omitempty"`
	MinDate     string            `yaml:"minDate,omitempty" json:"minDate,omitempty"`
	Min         *int              `yaml:"min,omitempty" json:"min,omitempty"`
	Max         *int              `yaml:"max,omitempty" json:"max,omitempty"`
	Message     string            `yaml:"message,omitempty" json:"message,omitempty"`
	Attributes  map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// SortedAttributes returns the HTML attributes ordered by name.
func (f Field) SortedAttributes() [][2]string {
	if len(f.Attributes) == 0 {
		return nil
	}
	names := make([]string, 0, len(f.Attributes))
	for name := range f.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([][2]string, 0, len(names))
	for _, name := range names {
		out = append(out, [2]string{name, f.Attributes[name]})
	}
	return out
}

// InfoLabels captures the captions of the "show what I typed" panel.
type InfoLabels struct {
	Show    string `yaml:"show" json:"show"`
	Hide    string `yaml:"hide" json:"hide"`
	Heading string `yaml:"heading" json:"heading"`
}

// Definition is one declared form.
type Definition struct {
	Name    string `yaml:"name" json:"name"`
	Title   string `yaml:"title" json:"title"`
	Heading string `yaml:"heading,omitempty" json:"heading,omitempty"`
	Submit  string `yaml:"submit" json:"submit"`
	// Success is the notice shown after a valid submission. When Summary is
	// set the rendered summary is shown instead.
	Success string      `yaml:"success,omitempty" json:"success,omitempty"`
	Summary []string    `yaml:"summary,omitempty" json:"summary,omitempty"`
	Info    *InfoLabels `yaml:"info,omitempty" json:"info,omitempty"`
	Fields  []Field     `yaml:"fields" json:"fields"`

	table validation.Table
}

// Table returns the compiled constraint table.
func (d Definition) Table() validation.Table {
	return d.table
}

// Field returns the named field declaration.
func (d Definition) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldNames lists the fields in declaration order.
func (d Definition) FieldNames() []string {
	out := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		out = append(out, f.Name)
	}
	return out
}

// Compile validates the declaration and builds its constraint table.
func Compile(def Definition) (Definition, error) {
	def.Name = strings.TrimSpace(def.Name)
	if def.Name == "" {
		return Definition{}, errors.New("forms: definition name is required")
	}
	if len(def.Fields) == 0 {
		return Definition{}, fmt.Errorf("forms: definition %q declares no fields", def.Name)
	}

	def.Fields = append([]Field(nil), def.Fields...)
	seen := make(map[string]struct{}, len(def.Fields))
	table := make(validation.Table, 0, len(def.Fields))
	for i, field := range def.Fields {
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return Definition{}, fmt.Errorf("forms: definition %q field %d has no name", def.Name, i)
		}
		if _, dup := seen[field.Name]; dup {
			return Definition{}, fmt.Errorf("forms: definition %q declares field %q twice", def.Name, field.Name)
		}
		seen[field.Name] = struct{}{}
		if field.Type == "" {
			field.Type = FieldTypeText
		}
		if !field.Type.valid() {
			return Definition{}, fmt.Errorf("forms: definition %q field %q has unknown type %q", def.Name, field.Name, field.Type)
		}
		def.Fields[i] = field

		constraint, err := compileField(field)
		if err != nil {
			return Definition{}, fmt.Errorf("forms: definition %q: %w", def.Name, err)
		}
		table = append(table, constraint)
	}

	if def.Heading == "" {
		def.Heading = def.Title
	}
	def.table = table
	return def, nil
}

func compileField(field Field) (validation.Constraint, error) {
	constraint := validation.Constraint{
		Field:    field.Name,
		Label:    field.Label,
		Optional: field.Optional && !field.Required,
		Message:  field.Message,
	}

	if field.Required {
		constraint.Rules = append(constraint.Rules, validation.Required())
	}

	switch field.Type {
	case FieldTypeDate:
		var minDate time.Time
		if strings.TrimSpace(field.MinDate) != "" {
			parsed, err := time.Parse(validation.DateLayout, strings.TrimSpace(field.MinDate))
			if err != nil {
				return validation.Constraint{}, fmt.Errorf("field %q: invalid minDate %q", field.Name, field.MinDate)
			}
			minDate = parsed
		}
		// Optional dates without a bound stay unconstrained.
		if !constraint.Optional || !minDate.IsZero() {
			constraint.Rules = append(constraint.Rules, validation.Date(minDate))
		}
	case FieldTypeNumber:
		if field.Min != nil || field.Max != nil {
			lo, hi := minInt, maxInt
			if field.Min != nil {
				lo = *field.Min
			}
			if field.Max != nil {
				hi = *field.Max
			}
			if lo > hi {
				return validation.Constraint{}, fmt.Errorf("field %q: min %d exceeds max %d", field.Name, lo, hi)
			}
			constraint.Rules = append(constraint.Rules, validation.IntRange(lo, hi))
		}
	}

	if field.MinLength > 0 || field.MaxLength > 0 {
		if field.MaxLength > 0 && field.MinLength > field.MaxLength {
			return validation.Constraint{}, fmt.Errorf("field %q: minLength %d exceeds maxLength %d", field.Name, field.MinLength, field.MaxLength)
		}
		constraint.Rules = append(constraint.Rules, validation.Length(field.MinLength, field.MaxLength))
	}
	if field.NoDigits {
		constraint.Rules = append(constraint.Rules, validation.NoDigits())
	}
	return constraint, nil
}

const (
	maxInt = int(^uint(0) >> 1)
	minInt = -maxInt - 1
)
