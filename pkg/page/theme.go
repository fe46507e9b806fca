package page

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

const (
	// ThemeName is the built-in theme.
	ThemeName = "widgetdemo"
	// VariantLight and VariantDark are the built-in theme variants.
	VariantLight = "light"
	VariantDark  = "dark"

	stylesheetAsset = "stylesheet"
)

var (
	// ErrUnknownTheme is returned when a theme name is not registered.
	ErrUnknownTheme = errors.New("page: unknown theme")
	// ErrUnknownThemeVariant is returned when a theme lacks the variant.
	ErrUnknownThemeVariant = errors.New("page: unknown theme variant")
)

// DefaultManifest describes the built-in light and dark palettes.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    ThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-bg":      "#f8fafc",
			"color-surface": "#ffffff",
			"color-fg":      "#1f2933",
			"color-muted":   "#64748b",
			"color-accent":  "#2563eb",
			"color-start":   "#16a34a",
			"color-stop":    "#dc2626",
			"color-error":   "#b91c1c",
			"color-notice":  "#047857",
			"font-family":   "system-ui, sans-serif",
			"font-mono":     "ui-monospace, monospace",
		},
		Assets: theme.Assets{
			Prefix: "/static",
			Files: map[string]string{
				stylesheetAsset: StylesheetName,
			},
		},
		Variants: map[string]theme.Variant{
			VariantLight: {},
			VariantDark: {
				Tokens: map[string]string{
					"color-bg":      "#0f172a",
					"color-surface": "#1e293b",
					"color-fg":      "#f1f5f9",
					"color-muted":   "#94a3b8",
					"color-accent":  "#60a5fa",
					"color-error":   "#f87171",
					"color-notice":  "#34d399",
				},
			},
		},
	}
}

// Selector resolves theme selections from registered manifests. It
// satisfies theme.ThemeSelector.
type Selector struct {
	mu             sync.RWMutex
	provider       theme.ThemeProvider
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests with a go-theme registry and selects
// defaultTheme/defaultVariant for blank queries. With no manifests the
// built-in theme is used.
func NewSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*Selector, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{DefaultManifest()}
	}
	registry := theme.NewRegistry()
	s := &Selector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("page: register theme %q: %w", manifest.Name, err)
		}
		s.manifests[manifest.Name] = manifest
	}
	s.provider = registry

	if s.defaultTheme == "" {
		s.defaultTheme = ThemeName
	}
	if _, err := s.Select(s.defaultTheme, s.defaultVariant); err != nil {
		return nil, err
	}
	return s, nil
}

// Provider exposes the underlying go-theme registry.
func (s *Selector) Provider() theme.ThemeProvider {
	return s.provider
}

// Select resolves name and variant. Blank values fall back to the defaults;
// the base palette is selected when no variant is requested at all.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}

	variant = strings.TrimSpace(variant)
	if variant == "" && name == s.defaultTheme {
		variant = s.defaultVariant
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q has no variant %q", ErrUnknownThemeVariant, name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Tokens merges the manifest tokens with the selected variant's overrides.
func Tokens(selection *theme.Selection) map[string]string {
	out := map[string]string{}
	if selection == nil || selection.Manifest == nil {
		return out
	}
	for k, v := range selection.Manifest.Tokens {
		out[k] = v
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for k, v := range variant.Tokens {
			out[k] = v
		}
	}
	return out
}

// AssetURL resolves a named asset for the selection, honouring variant
// overrides. It returns "" when the asset is not declared.
func AssetURL(selection *theme.Selection, name string) string {
	if selection == nil || selection.Manifest == nil {
		return ""
	}
	base := selection.Manifest.Assets
	prefix, file := base.Prefix, base.Files[name]
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
		if f, ok := variant.Assets.Files[name]; ok {
			file = f
		}
	}
	if file == "" {
		return ""
	}
	if prefix == "" {
		return file
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
}

var (
	tokenNamePattern  = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
	tokenValuePattern = regexp.MustCompile(`^[A-Za-z0-9#%(),.\- '"]+$`)
)

// CSSVariables renders tokens as a :root rule of custom properties, sorted
// by name. Tokens with names or values unsafe inside a style element are
// dropped.
func CSSVariables(tokens map[string]string) string {
	names := make([]string, 0, len(tokens))
	for name, value := range tokens {
		if tokenNamePattern.MatchString(name) && tokenValuePattern.MatchString(value) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root{")
	for _, name := range names {
		fmt.Fprintf(&b, "--%s:%s;", name, tokens[name])
	}
	b.WriteString("}")
	return b.String()
}
