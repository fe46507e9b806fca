package apidoc

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-widgetdemo/pkg/forms"
)

func defaultDefinitions(t *testing.T) []forms.Definition {
	t.Helper()
	registry, err := forms.Default()
	if err != nil {
		t.Fatalf("forms: %v", err)
	}
	return registry.Definitions()
}

func TestBuild_ValidatesAndDescribesConstraints(t *testing.T) {
	ctx := context.Background()
	doc, err := Build(defaultDefinitions(t), WithTitle("demo"), WithVersion("2.0.0"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := doc.Validate(ctx); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if doc.Info.Title != "demo" || doc.Info.Version != "2.0.0" {
		t.Fatalf("unexpected info %+v", doc.Info)
	}

	clients, ok := RequestSchema(doc, "clients")
	if !ok {
		t.Fatalf("clients schema missing")
	}
	if diff := cmp.Diff([]string{"nom", "prenom", "dateNaissance"}, clients.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	nom := clients.Properties["nom"].Value
	if nom.MinLength != 2 || nom.MaxLength == nil || *nom.MaxLength != 40 || nom.Pattern != noDigitsPattern {
		t.Fatalf("unexpected nom schema %+v", nom)
	}
	if got := clients.Properties["dateNaissance"].Value.Format; got != "date" {
		t.Fatalf("expected date format, got %q", got)
	}

	user, ok := RequestSchema(doc, "user")
	if !ok {
		t.Fatalf("user schema missing")
	}
	age := user.Properties["age"].Value
	if age.Min == nil || *age.Min != 18 || age.Max == nil || *age.Max != 65 {
		t.Fatalf("unexpected age bounds %+v", age)
	}

	post := doc.Paths.Value("/api/forms/user").Post
	for _, status := range []int{200, 422} {
		if post.Responses.Status(status) == nil {
			t.Fatalf("missing %d response", status)
		}
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	doc, err := Build(defaultDefinitions(t))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	loaded, err := Load(ctx, data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	prenom, ok := RequestSchema(loaded, "clients")
	if !ok {
		t.Fatalf("clients schema missing after load")
	}
	if got := *prenom.Properties["prenom"].Value.MaxLength; got != 30 {
		t.Fatalf("expected maxLength 30, got %d", got)
	}

	if _, err := Load(ctx, nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
	if _, err := Load(ctx, []byte(`{"openapi":"3.0.3"}`)); err == nil {
		t.Fatalf("expected validation error for document without info")
	}
}

func TestBuild_RequiresDefinitions(t *testing.T) {
	if _, err := Build(nil); err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := RequestSchema(nil, "clients"); ok {
		t.Fatalf("nil document has no schemas")
	}
}
