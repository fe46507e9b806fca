package forms_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-widgetdemo/pkg/forms"
	"github.com/goliatone/go-widgetdemo/pkg/testsupport"
)

func TestLint_DefaultDefinitionsAreClean(t *testing.T) {
	registry, err := forms.Default()
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}
	for _, def := range registry.Definitions() {
		if problems := forms.Lint(def); len(problems) > 0 {
			t.Fatalf("%s: unexpected problems: %v", def.Name, problems)
		}
	}
}

func TestLint_ReportsProblems(t *testing.T) {
	def := testsupport.MustParseDefinition(t, `
name: x
summary:
  - "{ghost} {b|upper}"
info:
  show: S
fields:
  - name: a
    required: true
  - name: b
    label: B
    type: number
    min: 1
    message: m
`)

	var got []string
	for _, p := range forms.Lint(def) {
		got = append(got, p.String())
	}
	want := []string{
		"x > fields.a -> label is empty",
		"x > fields.a -> constrained field has no error message",
		"x > info -> show, hide and heading labels are all required",
		"x > summary.0 -> placeholder {ghost} names no field",
		`x > summary.0 -> unknown formatter "upper"`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("problems mismatch (-want +got):\n%s", diff)
	}
}

func TestLint_RequiresSomeNotice(t *testing.T) {
	def, err := forms.Compile(forms.Definition{
		Name:   "bare",
		Fields: []forms.Field{{Name: "a", Label: "A"}},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	problems := forms.Lint(def)
	if len(problems) != 1 || problems[0].Location != "bare > success" {
		t.Fatalf("unexpected problems: %v", problems)
	}
}
