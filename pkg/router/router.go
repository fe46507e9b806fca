// Package router maps request paths to the named widget pages of a demo
// variant and builds the navigation menu.
package router

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
)

// Variant names a fixed set of routes.
type Variant string

const (
	// VariantFull serves every widget: clock, timer, calendar and both forms.
	VariantFull Variant = "full"
	// VariantClassic serves the clock and the stopwatch only.
	VariantClassic Variant = "classic"
)

// Route names.
const (
	RouteClock    = "clock"
	RouteTimer    = "timer"
	RouteCalendar = "calendar"
	RouteForm     = "form"
	RouteClients  = "clients"
)

// ErrUnknownVariant is returned by New for undeclared variants.
var ErrUnknownVariant = errors.New("router: unknown variant")

// Route maps one path to one widget page.
type Route struct {
	Name    string
	Path    string
	Title   string
	Heading string
	// Form names the form definition a form page is bound to.
	Form string
}

// MenuItem is one navigation link.
type MenuItem struct {
	Name   string
	Path   string
	Title  string
	Active bool
}

var catalog = map[string]Route{
	RouteClock:    {Name: RouteClock, Path: "/", Title: "Horloge", Heading: "Horloge"},
	RouteTimer:    {Name: RouteTimer, Path: "/timer", Title: "Chronomètre", Heading: "Chronomètre"},
	RouteCalendar: {Name: RouteCalendar, Path: "/calendar", Title: "Calendrier", Heading: "Calendrier"},
	RouteForm:     {Name: RouteForm, Path: "/form", Title: "User Form", Heading: "User Form", Form: "user"},
	RouteClients:  {Name: RouteClients, Path: "/clients", Title: "Gestion des Clients", Heading: "Formulaire Client", Form: "clients"},
}

var variants = map[Variant][]string{
	VariantFull:    {RouteClock, RouteTimer, RouteCalendar, RouteForm, RouteClients},
	VariantClassic: {RouteClock, RouteTimer},
}

// Variants lists the known variant names, sorted.
func Variants() []Variant {
	out := make([]Variant, 0, len(variants))
	for v := range variants {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseVariant resolves a variant name. Blank selects VariantFull.
func ParseVariant(name string) (Variant, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return VariantFull, nil
	}
	v := Variant(name)
	if _, ok := variants[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return v, nil
}

// Router holds the routes of one variant in menu order.
type Router struct {
	variant Variant
	routes  []Route
	byPath  map[string]Route
	byName  map[string]Route
}

// New builds the router for variant.
func New(variant Variant) (*Router, error) {
	v, err := ParseVariant(string(variant))
	if err != nil {
		return nil, err
	}
	names := variants[v]
	r := &Router{
		variant: v,
		routes:  make([]Route, 0, len(names)),
		byPath:  make(map[string]Route, len(names)),
		byName:  make(map[string]Route, len(names)),
	}
	for _, name := range names {
		route := catalog[name]
		r.routes = append(r.routes, route)
		r.byPath[route.Path] = route
		r.byName[route.Name] = route
	}
	return r, nil
}

// Variant returns the router's variant.
func (r *Router) Variant() Variant {
	return r.variant
}

// Routes returns the routes in menu order.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// Resolve finds the route serving p. Trailing slashes are ignored.
func (r *Router) Resolve(p string) (Route, bool) {
	route, ok := r.byPath[normalize(p)]
	return route, ok
}

// Lookup finds a route by name.
func (r *Router) Lookup(name string) (Route, bool) {
	route, ok := r.byName[name]
	return route, ok
}

// Menu returns the navigation items, flagging the route named active.
func (r *Router) Menu(active string) []MenuItem {
	items := make([]MenuItem, 0, len(r.routes))
	for _, route := range r.routes {
		items = append(items, MenuItem{
			Name:   route.Name,
			Path:   route.Path,
			Title:  route.Title,
			Active: route.Name == active,
		})
	}
	return items
}

func normalize(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
