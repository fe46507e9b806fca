package page

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-widgetdemo/pkg/calendar"
	"github.com/goliatone/go-widgetdemo/pkg/forms"
	"github.com/goliatone/go-widgetdemo/pkg/router"
	"github.com/goliatone/go-widgetdemo/pkg/stopwatch"
	"github.com/goliatone/go-widgetdemo/pkg/wallclock"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithThemeSelector replaces the built-in theme selector.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(r *Renderer) {
		if selector != nil {
			r.selector = selector
		}
	}
}

// WithTheme selects the theme and variant used for every page.
func WithTheme(name, variant string) Option {
	return func(r *Renderer) {
		r.themeName = name
		r.variant = variant
	}
}

// WithTemplates loads page templates from files instead of the embedded set.
func WithTemplates(files fs.FS) Option {
	return func(r *Renderer) {
		if files != nil {
			r.templates = files
		}
	}
}

// WithLogger sets the logger. The default discards.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer renders the pages served by one router.
type Renderer struct {
	routes    *router.Router
	engine    *Engine
	templates fs.FS
	selector  theme.ThemeSelector
	themeName string
	variant   string
	selection *theme.Selection
	logger    *zap.Logger
}

// New builds a Renderer for routes. The theme selection is resolved once.
func New(routes *router.Router, options ...Option) (*Renderer, error) {
	if routes == nil {
		return nil, fmt.Errorf("page: router is required")
	}
	r := &Renderer{
		routes:    routes,
		templates: TemplatesFS(),
		themeName: ThemeName,
		variant:   VariantLight,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}

	if r.selector == nil {
		selector, err := NewSelector(ThemeName, VariantLight)
		if err != nil {
			return nil, err
		}
		r.selector = selector
	}
	selection, err := r.selector.Select(r.themeName, r.variant)
	if err != nil {
		return nil, fmt.Errorf("page: select theme: %w", err)
	}
	r.selection = selection

	engine, err := NewEngine(WithFS(r.templates), WithGlobalData(map[string]any{
		"variant": string(routes.Variant()),
	}))
	if err != nil {
		return nil, err
	}
	r.engine = engine
	return r, nil
}

// Selection returns the resolved theme selection.
func (r *Renderer) Selection() *theme.Selection {
	return r.selection
}

// Clock renders the clock page.
func (r *Renderer) Clock(w io.Writer, reading wallclock.Reading) error {
	return r.render(w, router.RouteClock, pongo2.Context{
		"clock": newClockView(reading),
	})
}

// Timer renders the stopwatch page bound to mount.
func (r *Renderer) Timer(w io.Writer, mount string, snapshot stopwatch.Snapshot) error {
	return r.render(w, router.RouteTimer, pongo2.Context{
		"stopwatch": newStopwatchView(mount, snapshot),
	})
}

// Calendar renders the date picker page. errMsg is shown under the input.
func (r *Renderer) Calendar(w io.Writer, selection calendar.Selection, errMsg string) error {
	return r.render(w, router.RouteCalendar, pongo2.Context{
		"calendar": newCalendarView(selection, errMsg),
	})
}

// Form renders form on the page of route. The template shares the route's
// name.
func (r *Renderer) Form(w io.Writer, route string, form *forms.Form) error {
	if form == nil {
		return fmt.Errorf("page: form is required")
	}
	rt, ok := r.routes.Lookup(route)
	if !ok {
		return fmt.Errorf("page: route %q is not served", route)
	}
	return r.renderTemplate(w, rt, rt.Name, pongo2.Context{
		"form": newFormView(rt.Path, form),
	})
}

// NotFound renders the missing-page notice for path.
func (r *Renderer) NotFound(w io.Writer, path string) error {
	rt := router.Route{Name: "notfound", Path: path, Title: "Page introuvable", Heading: "Page introuvable"}
	return r.renderTemplate(w, rt, "notfound", pongo2.Context{"path": path})
}

func (r *Renderer) render(w io.Writer, route string, data pongo2.Context) error {
	rt, ok := r.routes.Lookup(route)
	if !ok {
		return fmt.Errorf("page: route %q is not served", route)
	}
	return r.renderTemplate(w, rt, rt.Name, data)
}

func (r *Renderer) renderTemplate(w io.Writer, rt router.Route, name string, data pongo2.Context) error {
	ctx := pongo2.Context{
		"title":   rt.Title,
		"heading": rt.Heading,
		"route":   rt.Name,
		"menu":    r.routes.Menu(rt.Name),
		"theme": map[string]any{
			"Name":       r.selection.Theme,
			"Variant":    r.selection.Variant,
			"CSS":        CSSVariables(Tokens(r.selection)),
			"Stylesheet": AssetURL(r.selection, stylesheetAsset),
		},
	}
	ctx.Update(data)

	if err := r.engine.Render(name, ctx, w); err != nil {
		r.logger.Error("render page", zap.String("template", name), zap.Error(err))
		return err
	}
	return nil
}
