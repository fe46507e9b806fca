package forms_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-widgetdemo/pkg/forms"
)

func mustDefinition(t *testing.T, name string) forms.Definition {
	t.Helper()
	registry, err := forms.Default()
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}
	def, err := registry.Get(name)
	if err != nil {
		t.Fatalf("get %s: %v", name, err)
	}
	return def
}

func TestDefault_RegistersBuiltInForms(t *testing.T) {
	registry, err := forms.Default()
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}
	if diff := cmp.Diff([]string{"clients", "user"}, registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if _, err := registry.Get("missing"); !errors.Is(err, forms.ErrUnknownForm) {
		t.Fatalf("expected ErrUnknownForm, got %v", err)
	}

	clients := mustDefinition(t, "clients")
	if diff := cmp.Diff([]string{"nom", "prenom", "dateNaissance"}, clients.FieldNames()); diff != "" {
		t.Fatalf("client fields mismatch (-want +got):\n%s", diff)
	}
}

func TestClientsTable(t *testing.T) {
	table := mustDefinition(t, "clients").Table()

	const (
		nameMsg = "Nom est obligatoire, entre 2 et 40 caractères, sans chiffres."
		dateMsg = "Date de Naissance doit être après le 01/01/1950."
	)

	cases := []struct {
		name          string
		nom, prenom   string
		dateNaissance string
		want          map[string]string
	}{
		{name: "short name", nom: "A", prenom: "Doe", dateNaissance: "1960-01-01", want: map[string]string{"nom": nameMsg}},
		{name: "digit in name", nom: "An1", prenom: "Doe", dateNaissance: "1960-01-01", want: map[string]string{"nom": nameMsg}},
		{name: "too early", nom: "Ann", prenom: "Doe", dateNaissance: "1949-12-31", want: map[string]string{"dateNaissance": dateMsg}},
		{name: "valid", nom: "Ann", prenom: "Doe", dateNaissance: "1960-01-01"},
		{
			name: "first name bounds",
			nom:  "Ann", prenom: strings.Repeat("x", 31), dateNaissance: "1960-01-01",
			want: map[string]string{"prenom": "Prénom est obligatoire, entre 2 et 30 caractères, sans chiffres."},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := table.Validate(map[string]string{
				"nom":           tc.nom,
				"prenom":        tc.prenom,
				"dateNaissance": tc.dateNaissance,
			})
			if diff := cmp.Diff(tc.want, result.Errors); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
			if result.Valid != (tc.want == nil) {
				t.Fatalf("unexpected verdict %v", result.Valid)
			}
		})
	}
}

func TestUserTable(t *testing.T) {
	table := mustDefinition(t, "user").Table()
	base := map[string]string{"firstName": "Ada", "lastName": "Lovelace"}

	cases := map[string]bool{"17": false, "18": true, "65": true, "66": false, "abc": false, "": false}
	for age, valid := range cases {
		values := map[string]string{"age": age}
		for k, v := range base {
			values[k] = v
		}
		result := table.Validate(values)
		if result.Valid != valid {
			t.Fatalf("age %q: expected valid=%v, got %v (%v)", age, valid, result.Valid, result.Errors)
		}
		if !valid {
			if diff := cmp.Diff([]string{"age"}, result.Failed()); diff != "" {
				t.Fatalf("age %q failed fields mismatch (-want +got):\n%s", age, diff)
			}
		}
	}

	result := table.Validate(map[string]string{"age": "30"})
	want := map[string]string{
		"firstName": "Please enter your first and last name.",
		"lastName":  "Please enter your first and last name.",
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("name errors mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_SubmitDeliversOnlyValidValues(t *testing.T) {
	form := forms.NewForm(mustDefinition(t, "clients"))

	var delivered []forms.Submission
	sink := forms.SinkFunc(func(_ context.Context, s forms.Submission) error {
		delivered = append(delivered, s)
		return nil
	})

	form.SetAll(map[string]string{"nom": "A", "prenom": "Doe", "dateNaissance": "1960-01-01", "ignored": "x"})
	result, err := form.Submit(context.Background(), sink)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Valid || len(delivered) != 0 || form.Submitted() {
		t.Fatalf("invalid submission must not be delivered")
	}
	if _, ok := form.Errors()["nom"]; !ok {
		t.Fatalf("expected nom error, got %v", form.Errors())
	}

	if err := form.Set("nom", "Ann"); err != nil {
		t.Fatalf("set: %v", err)
	}
	result, err = form.Submit(context.Background(), sink)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Valid || len(delivered) != 1 {
		t.Fatalf("expected one delivery, got %d (valid=%v)", len(delivered), result.Valid)
	}
	if form.Errors() != nil {
		t.Fatalf("errors must be recomputed and empty, got %v", form.Errors())
	}

	want := forms.Submission{
		Form:   "clients",
		Values: forms.Values{"nom": "Ann", "prenom": "Doe", "dateNaissance": "1960-01-01"},
	}
	if diff := cmp.Diff(want, delivered[0]); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}
	if got := form.Notice(); got != "Formulaire soumis avec succès !" {
		t.Fatalf("unexpected notice %q", got)
	}
}

func TestForm_SubmitPropagatesSinkFailure(t *testing.T) {
	form := forms.NewForm(mustDefinition(t, "user"), forms.Values{"firstName": "Ada", "lastName": "L", "age": "36"})
	boom := errors.New("boom")
	_, err := form.Submit(context.Background(), forms.SinkFunc(func(context.Context, forms.Submission) error { return boom }))
	if !errors.Is(err, boom) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if form.Submitted() {
		t.Fatalf("failed delivery must not mark the form submitted")
	}
}

func TestForm_SetRejectsUnknownField(t *testing.T) {
	form := forms.NewForm(mustDefinition(t, "clients"))
	if err := form.Set("age", "1"); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestForm_ToggleInfo(t *testing.T) {
	form := forms.NewForm(mustDefinition(t, "clients"))
	if form.InfoVisible() {
		t.Fatalf("info panel starts hidden")
	}
	if !form.ToggleInfo() || !form.InfoVisible() {
		t.Fatalf("expected visible after toggle")
	}
	if form.ToggleInfo() {
		t.Fatalf("expected hidden after second toggle")
	}
}

func TestSummarize_UserForm(t *testing.T) {
	def := mustDefinition(t, "user")
	got := forms.Summarize(def, forms.Values{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"age":       "036",
		"email":     "ada@example.com",
		"date":      "2024-06-01",
		"message":   "hello",
	})
	want := "Name: Ada Lovelace\nAge: 36\nEmail: ada@example.com\nDate: Sat Jun 01 2024\nMessage: hello"
	if got != want {
		t.Fatalf("summary mismatch:\nwant %q\ngot  %q", want, got)
	}

	blank := forms.Summarize(def, forms.Values{"firstName": "A", "lastName": "B", "age": "20"})
	if !strings.Contains(blank, "Date: \n") {
		t.Fatalf("expected empty date line, got %q", blank)
	}

	if forms.Summarize(mustDefinition(t, "clients"), forms.Values{}) != "" {
		t.Fatalf("clients form has no summary")
	}
}

func TestSinks(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var buf bytes.Buffer

	sink := forms.Sinks(forms.LogSink(zap.New(core)), forms.WriterSink(&buf), nil)
	err := sink.Deliver(context.Background(), forms.Submission{
		Form:   "clients",
		Values: forms.Values{"prenom": "Doe", "nom": "Ann"},
	})
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}

	if got := buf.String(); got != "nom: Ann\nprenom: Doe\n" {
		t.Fatalf("writer output mismatch: %q", got)
	}
	entries := logs.FilterMessage("form submitted").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["value.nom"]; got != "Ann" {
		t.Fatalf("expected logged nom, got %v", got)
	}
}

func TestLoadFS_RejectsBadDefinitions(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "name: x\nfields:\n  - name: a\n    minLenght: 2\n",
		"no fields":      "name: x\n",
		"bad type":       "name: x\nfields:\n  - name: a\n    type: slider\n",
		"bad min date":   "name: x\nfields:\n  - name: a\n    type: date\n    minDate: yesterday\n",
		"duplicate":      "name: x\nfields:\n  - name: a\n  - name: a\n",
		"inverted range": "name: x\nfields:\n  - name: a\n    minLength: 5\n    maxLength: 2\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := forms.LoadFS(fstest.MapFS{"form.yaml": {Data: []byte(doc)}})
			if err == nil {
				t.Fatalf("expected load error")
			}
		})
	}
}

func TestLoadFS_IgnoresOtherFiles(t *testing.T) {
	registry, err := forms.LoadFS(fstest.MapFS{
		"README.md":      {Data: []byte("# forms")},
		"nested/a.yml":   {Data: []byte("name: a\nfields:\n  - name: one\n    required: true\n")},
		"nested/b.json":  {Data: []byte(`{"name":"b","fields":[{"name":"two","type":"number","min":1,"max":3}]}`)},
		"nested/ignored": {Data: []byte("not yaml: [")},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	b, _ := registry.Get("b")
	if b.Table().Validate(map[string]string{"two": "4"}).Valid {
		t.Fatalf("expected range rule from JSON definition")
	}
}

func TestCompile_LeavesCallerFieldsUntouched(t *testing.T) {
	fields := []forms.Field{{Name: "  a  "}}
	def := forms.Definition{Name: "scratch", Fields: fields}

	compiled, err := forms.Compile(def)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	if diff := cmp.Diff(forms.Field{Name: "  a  "}, fields[0]); diff != "" {
		t.Fatalf("caller field mutated (-want +got):\n%s", diff)
	}
	got := compiled.Fields[0]
	if got.Name != "a" || got.Type != forms.FieldTypeText {
		t.Fatalf("expected normalized compiled field, got name=%q type=%q", got.Name, got.Type)
	}
}
