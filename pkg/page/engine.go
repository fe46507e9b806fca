package page

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

const templateExt = ".tmpl"

// EngineOption configures an Engine before construction.
type EngineOption func(*engineConfig)

type engineConfig struct {
	templates  fs.FS
	globalData map[string]any
}

// WithFS loads templates from files.
func WithFS(files fs.FS) EngineOption {
	return func(cfg *engineConfig) {
		cfg.templates = files
	}
}

// WithGlobalData seeds values available to every template.
func WithGlobalData(data map[string]any) EngineOption {
	return func(cfg *engineConfig) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// Engine is a pongo2 template set with a compiled-template cache.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	tplExt      string
}

// NewEngine constructs an Engine. A template filesystem is required.
func NewEngine(options ...EngineOption) (*Engine, error) {
	cfg := &engineConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.templates == nil {
		return nil, errors.New("page: template filesystem is required")
	}

	engine := &Engine{
		templateSet: pongo2.NewSet("widgetdemo", pongo2.NewFSLoader(cfg.templates)),
		templates:   make(map[string]*pongo2.Template),
		tplExt:      templateExt,
	}
	registerDefaultFilters()

	if len(cfg.globalData) > 0 {
		if engine.templateSet.Globals == nil {
			engine.templateSet.Globals = make(pongo2.Context)
		}
		engine.templateSet.Globals.Update(pongo2.Context(cfg.globalData))
	}
	return engine, nil
}

// Render executes the named template into out. Nothing is written when
// execution fails.
func (e *Engine) Render(name string, data pongo2.Context, out io.Writer) error {
	if e == nil || e.templateSet == nil {
		return errors.New("page: engine is nil")
	}
	templatePath := name
	if !strings.HasSuffix(templatePath, e.tplExt) {
		templatePath += e.tplExt
	}

	tmpl, err := e.getTemplate(templatePath)
	if err != nil {
		return err
	}
	if data == nil {
		data = pongo2.Context{}
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(data, &buf)
	e.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("page: execute template %q: %w", templatePath, err)
	}

	if _, err := out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("page: write %q: %w", templatePath, err)
	}
	return nil
}

func (e *Engine) getTemplate(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.templateSet.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("page: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("sanitize") {
		_ = pongo2.RegisterFilter("sanitize", filterSanitize)
	}
}

func filterSanitize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsSafeValue(Sanitize(in.String())), nil
}
