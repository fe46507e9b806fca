// Package widgetdemo bundles the clock, stopwatch, calendar and form widgets
// behind one HTTP handler. Most callers only need NewHandler; the pkg/
// packages hold the widget models for direct use.
package widgetdemo

import (
	"net/http"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-widgetdemo/internal/server"
	"github.com/goliatone/go-widgetdemo/pkg/forms"
	"github.com/goliatone/go-widgetdemo/pkg/page"
	"github.com/goliatone/go-widgetdemo/pkg/router"
)

// Option configures the handler built by NewHandler.
type Option = server.Option

// Variant selects the route set.
type Variant = router.Variant

const (
	// VariantFull serves the clock, stopwatch, calendar and both forms.
	VariantFull = router.VariantFull
	// VariantClassic serves the clock and stopwatch only.
	VariantClassic = router.VariantClassic
)

// Submission is one validated form delivered to a Sink.
type Submission = forms.Submission

// Sink receives valid submissions.
type Sink = forms.Sink

// NewHandler builds the HTTP handler for variant. Stopwatches mounted by the
// returned handler live as long as their event streams.
func NewHandler(variant Variant, options ...Option) (http.Handler, error) {
	routes, err := router.New(variant)
	if err != nil {
		return nil, err
	}
	srv, err := server.New(routes, options...)
	if err != nil {
		return nil, err
	}
	return srv.Handler(), nil
}

// WithLogger sets the request and widget logger.
func WithLogger(logger *zap.Logger) Option {
	return server.WithLogger(logger)
}

// WithSink replaces the default log sink for valid submissions.
func WithSink(sink Sink) Option {
	return server.WithSink(sink)
}

// WithForms serves the given definitions instead of the built-in ones.
func WithForms(registry *forms.Registry) Option {
	return server.WithForms(registry)
}

// WithThemeVariant selects a variant of the built-in theme.
func WithThemeVariant(variant string) Option {
	return server.WithPageOptions(page.WithTheme(page.ThemeName, variant))
}

// WithThemeSelector passes a go-theme selector through to the page renderer
// so tokens and assets come from the caller's manifests.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return server.WithPageOptions(page.WithThemeSelector(selector))
}
