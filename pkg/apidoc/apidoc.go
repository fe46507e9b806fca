// Package apidoc describes the JSON form-validation API as an OpenAPI 3
// document built with kin-openapi.
package apidoc

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-widgetdemo/pkg/forms"
)

const (
	// Version is the OpenAPI version emitted by Build.
	Version = "3.0.3"
	// PathPrefix is the route prefix of the validation endpoints.
	PathPrefix = "/api/forms/"

	noDigitsPattern = `^[^0-9]*$`
)

// Option configures Build.
type Option func(*config)

type config struct {
	title   string
	version string
}

// WithTitle overrides the document title.
func WithTitle(title string) Option {
	return func(c *config) {
		if title != "" {
			c.title = title
		}
	}
}

// WithVersion overrides the API version in the document info.
func WithVersion(version string) Option {
	return func(c *config) {
		if version != "" {
			c.version = version
		}
	}
}

// Build describes POST /api/forms/{name} for every definition.
func Build(defs []forms.Definition, options ...Option) (*openapi3.T, error) {
	cfg := config{title: "widgetdemo form validation", version: "1.0.0"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if len(defs) == 0 {
		return nil, errors.New("apidoc: no form definitions")
	}

	doc := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:   cfg.title,
			Version: cfg.version,
		},
		Paths: openapi3.NewPaths(),
	}
	for _, def := range defs {
		doc.AddOperation(PathPrefix+def.Name, "POST", operation(def))
	}
	return doc, nil
}

// Load decodes and validates a serialized document.
func Load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if len(data) == 0 {
		return nil, errors.New("apidoc: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("apidoc: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("apidoc: validate: %w", err)
	}
	return doc, nil
}

// RequestSchema returns the request body schema of the named form.
func RequestSchema(doc *openapi3.T, form string) (*openapi3.Schema, bool) {
	if doc == nil || doc.Paths == nil {
		return nil, false
	}
	item := doc.Paths.Value(PathPrefix + form)
	if item == nil || item.Post == nil || item.Post.RequestBody == nil || item.Post.RequestBody.Value == nil {
		return nil, false
	}
	media := item.Post.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, false
	}
	return media.Schema.Value, true
}

func operation(def forms.Definition) *openapi3.Operation {
	accepted := openapi3.NewObjectSchema().
		WithProperty("valid", openapi3.NewBoolSchema())
	accepted.Required = []string{"valid"}

	rejected := openapi3.NewObjectSchema().
		WithProperty("valid", openapi3.NewBoolSchema()).
		WithProperty("errors", openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema()))
	rejected.Required = []string{"valid", "errors"}

	summary := def.Title
	if summary == "" {
		summary = def.Name
	}

	return &openapi3.Operation{
		OperationID: "validate_" + def.Name,
		Summary:     summary,
		Tags:        []string{"forms"},
		RequestBody: &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithRequired(true).
				WithJSONSchema(requestSchema(def)),
		},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(200, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("values accepted").WithJSONSchema(accepted),
			}),
			openapi3.WithStatus(422, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("field error map").WithJSONSchema(rejected),
			}),
		),
	}
}

func requestSchema(def forms.Definition) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = def.Title
	for _, field := range def.Fields {
		schema.WithProperty(field.Name, fieldSchema(field))
		if field.Required {
			schema.Required = append(schema.Required, field.Name)
		}
	}
	return schema
}

func fieldSchema(field forms.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	switch field.Type {
	case forms.FieldTypeNumber:
		schema = openapi3.NewIntegerSchema()
		if field.Min != nil {
			schema.WithMin(float64(*field.Min))
		}
		if field.Max != nil {
			schema.WithMax(float64(*field.Max))
		}
	case forms.FieldTypeDate:
		schema = openapi3.NewStringSchema().WithFormat("date")
	case forms.FieldTypeEmail:
		schema = openapi3.NewStringSchema().WithFormat("email")
	default:
		schema = openapi3.NewStringSchema()
	}

	if field.MinLength > 0 {
		schema.WithMinLength(int64(field.MinLength))
	}
	if field.MaxLength > 0 {
		schema.WithMaxLength(int64(field.MaxLength))
	}
	if field.NoDigits {
		schema.WithPattern(noDigitsPattern)
	}
	if field.MinDate != "" {
		schema.Description = "on or after " + field.MinDate
	}
	if field.Message != "" {
		schema.Extensions = map[string]any{"x-error-message": field.Message}
	}
	schema.Title = field.Label
	return schema
}
