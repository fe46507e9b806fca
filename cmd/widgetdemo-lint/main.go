package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-widgetdemo/pkg/apidoc"
	"github.com/goliatone/go-widgetdemo/pkg/forms"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint form definition files. Without paths the built-in forms are linted.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	ctx := context.Background()

	var (
		violations []violation
		defs       []forms.Definition
	)
	paths := flag.Args()
	if len(paths) == 0 {
		linted, compiled, err := lintFS(forms.DefinitionsFS(), "builtin")
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint builtin: %v\n", err)
			os.Exit(1)
		}
		violations, defs = linted, compiled
	}
	for _, path := range paths {
		linted, compiled, err := lintPath(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
		defs = append(defs, compiled...)
	}

	if err := checkDocument(ctx, defs); err != nil {
		violations = append(violations, violation{file: "openapi", location: "document", message: err.Error()})
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
	fmt.Printf("%d form(s) ok\n", len(defs))
}

func lintPath(path string) ([]violation, []forms.Definition, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if info.IsDir() {
		return lintFS(os.DirFS(path), path)
	}
	return lintFS(os.DirFS(filepath.Dir(path)), filepath.Dir(path), filepath.Base(path))
}

// lintFS lints the named files of fsys, or every definition file when no
// names are given.
func lintFS(fsys fs.FS, root string, names ...string) ([]violation, []forms.Definition, error) {
	if len(names) == 0 {
		err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			switch filepath.Ext(p) {
			case ".yaml", ".yml", ".json":
				if !entry.IsDir() {
					names = append(names, p)
				}
			}
			return nil
		})
		if err != nil {
			return nil, nil, err
		}
	}

	var (
		result []violation
		defs   []forms.Definition
	)
	for _, name := range names {
		file := filepath.Join(root, name)
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, nil, fmt.Errorf("read file: %w", err)
		}
		def, err := forms.ParseDefinition(raw)
		if err == nil {
			def, err = forms.Compile(def)
		}
		if err != nil {
			result = append(result, violation{file: file, location: "definition", message: err.Error()})
			continue
		}
		for _, p := range forms.Lint(def) {
			result = append(result, violation{file: file, location: p.Location, message: p.Message})
		}
		defs = append(defs, def)
	}
	return result, defs, nil
}

// checkDocument builds the API description of defs and runs it through the
// OpenAPI loader and validator.
func checkDocument(ctx context.Context, defs []forms.Definition) error {
	if len(defs) == 0 {
		return nil
	}
	doc, err := apidoc.Build(defs)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = apidoc.Load(ctx, raw)
	return err
}
