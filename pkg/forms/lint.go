package forms

import (
	"fmt"
	"sort"
	"strings"
)

// Problem is one lint finding on a compiled definition.
type Problem struct {
	Location string
	Message  string
}

func (p Problem) String() string {
	return p.Location + " -> " + p.Message
}

var summaryFormatters = map[string]struct{}{"": {}, "int": {}, "datestring": {}}

// Lint reports declarations that compile but render poorly: summary
// placeholders naming unknown fields, constrained fields without a message,
// fields without a label, incomplete info labels and forms that never show
// a notice. Problems are ordered by location.
func Lint(def Definition) []Problem {
	var problems []Problem
	add := func(location, format string, args ...any) {
		problems = append(problems, Problem{
			Location: strings.Join([]string{def.Name, location}, " > "),
			Message:  fmt.Sprintf(format, args...),
		})
	}

	for _, field := range def.Fields {
		location := "fields." + field.Name
		if strings.TrimSpace(field.Label) == "" {
			add(location, "label is empty")
		}
		if constrained(field) && strings.TrimSpace(field.Message) == "" {
			add(location, "constrained field has no error message")
		}
	}

	for i, line := range def.Summary {
		for _, match := range placeholderPattern.FindAllStringSubmatch(line, -1) {
			if _, ok := def.Field(match[1]); !ok {
				add(fmt.Sprintf("summary.%d", i), "placeholder {%s} names no field", match[1])
			}
			if _, ok := summaryFormatters[match[2]]; !ok {
				add(fmt.Sprintf("summary.%d", i), "unknown formatter %q", match[2])
			}
		}
	}

	if def.Info != nil {
		if def.Info.Show == "" || def.Info.Hide == "" || def.Info.Heading == "" {
			add("info", "show, hide and heading labels are all required")
		}
	}
	if def.Success == "" && len(def.Summary) == 0 {
		add("success", "form declares neither a success notice nor a summary")
	}

	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].Location < problems[j].Location
	})
	return problems
}

func constrained(f Field) bool {
	return f.Required || f.MinLength > 0 || f.MaxLength > 0 || f.NoDigits ||
		f.MinDate != "" || f.Min != nil || f.Max != nil ||
		(!f.Optional && (f.Type == FieldTypeNumber || f.Type == FieldTypeDate || f.Type == FieldTypeEmail))
}
