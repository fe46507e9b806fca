package forms

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed definitions/*.yaml
var embeddedDefinitions embed.FS

// ErrUnknownForm is returned by Registry.Get for undeclared names.
var ErrUnknownForm = errors.New("forms: unknown form")

// Registry holds compiled definitions by name.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry compiles and registers defs.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{defs: make(map[string]Definition, len(defs))}
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register compiles def and adds it. Duplicate names are rejected.
func (r *Registry) Register(def Definition) error {
	compiled, err := Compile(def)
	if err != nil {
		return err
	}
	if r.defs == nil {
		r.defs = make(map[string]Definition)
	}
	if _, exists := r.defs[compiled.Name]; exists {
		return fmt.Errorf("forms: duplicate definition %q", compiled.Name)
	}
	r.defs[compiled.Name] = compiled
	return nil
}

// Get returns the named definition.
func (r *Registry) Get(name string) (Definition, error) {
	if r == nil {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownForm, name)
	}
	def, ok := r.defs[strings.TrimSpace(name)]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownForm, name)
	}
	return def, nil
}

// Names lists the registered definitions, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions returns every definition sorted by name.
func (r *Registry) Definitions() []Definition {
	names := r.Names()
	out := make([]Definition, 0, len(names))
	for _, name := range names {
		out = append(out, r.defs[name])
	}
	return out
}

// LoadFS walks fsys and compiles every YAML or JSON definition file.
func LoadFS(fsys fs.FS) (*Registry, error) {
	registry := &Registry{defs: make(map[string]Definition)}
	if fsys == nil {
		return registry, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("forms: read %s: %w", p, err)
		}
		def, err := ParseDefinition(data)
		if err != nil {
			return fmt.Errorf("forms: %s: %w", p, err)
		}
		if err := registry.Register(def); err != nil {
			return fmt.Errorf("forms: %s: %w", p, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return registry, nil
}

// ParseDefinition decodes one YAML (or JSON) definition. Unknown keys are
// rejected so typos in constraint names do not silently drop a rule.
func ParseDefinition(data []byte) (Definition, error) {
	var def Definition
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&def); err != nil {
		return Definition{}, fmt.Errorf("decode definition: %w", err)
	}
	return def, nil
}

func isDefinitionFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the embedded "clients" and "user" definitions.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = LoadFS(embeddedDefinitions)
	})
	return defaultRegistry, defaultErr
}

// DefinitionsFS exposes the embedded definition files.
func DefinitionsFS() fs.FS {
	sub, err := fs.Sub(embeddedDefinitions, "definitions")
	if err != nil {
		return embeddedDefinitions
	}
	return sub
}
