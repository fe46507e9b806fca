package widgetdemo

import (
	"context"
	"io/fs"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-widgetdemo/pkg/apidoc"
	"github.com/goliatone/go-widgetdemo/pkg/forms"
	"github.com/goliatone/go-widgetdemo/pkg/validation"
)

// LoadForms compiles every definition file under fsys.
func LoadForms(fsys fs.FS) (*forms.Registry, error) {
	return forms.LoadFS(fsys)
}

// ValidateForm checks values against the named built-in form without
// delivering anything.
func ValidateForm(name string, values map[string]string) (validation.Result, error) {
	registry, err := forms.Default()
	if err != nil {
		return validation.Result{}, err
	}
	def, err := registry.Get(name)
	if err != nil {
		return validation.Result{}, err
	}
	return def.Table().Validate(values), nil
}

// SubmitForm validates values against the named built-in form and hands
// valid submissions to sink.
func SubmitForm(ctx context.Context, name string, values map[string]string, sink Sink) (validation.Result, error) {
	registry, err := forms.Default()
	if err != nil {
		return validation.Result{}, err
	}
	def, err := registry.Get(name)
	if err != nil {
		return validation.Result{}, err
	}
	form := forms.NewForm(def)
	form.SetAll(values)
	return form.Submit(ctx, sink)
}

// APIDocument describes the JSON validation endpoints of registry.
func APIDocument(registry *forms.Registry) (*openapi3.T, error) {
	return apidoc.Build(registry.Definitions())
}
