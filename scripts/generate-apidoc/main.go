package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-widgetdemo/pkg/apidoc"
	"github.com/goliatone/go-widgetdemo/pkg/forms"
)

func main() {
	var (
		formsDir   = flag.String("forms", "", "directory of form definitions (built-in forms when empty)")
		outputPath = flag.String("output", "openapi.json", "output path for the API description")
	)
	flag.Parse()

	registry, err := loadRegistry(*formsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load forms: %v\n", err)
		os.Exit(1)
	}

	doc, err := apidoc.Build(registry.Definitions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "build document: %v\n", err)
		os.Exit(1)
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode document: %v\n", err)
		os.Exit(1)
	}

	if dir := filepath.Dir(*outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "create %s: %v\n", dir, err)
			os.Exit(1)
		}
	}
	if err := os.WriteFile(*outputPath, append(payload, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *outputPath, err)
		os.Exit(1)
	}
	fmt.Printf("API description for %v written to %s\n", registry.Names(), *outputPath)
}

func loadRegistry(dir string) (*forms.Registry, error) {
	if dir == "" {
		return forms.Default()
	}
	return forms.LoadFS(os.DirFS(dir))
}
