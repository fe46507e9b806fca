package widgetdemo

import (
	"io/fs"

	"github.com/goliatone/go-widgetdemo/pkg/forms"
	"github.com/goliatone/go-widgetdemo/pkg/page"
)

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them with page.WithTemplates.
func EmbeddedTemplates() fs.FS {
	return page.TemplatesFS()
}

// StaticFS exposes the stylesheet served under /static.
//
// Typical mount:
//
//	mux.Handle("/static/",
//	  http.StripPrefix("/static/",
//	    http.FileServerFS(widgetdemo.StaticFS()),
//	  ),
//	)
func StaticFS() fs.FS {
	return page.StaticFS()
}

// EmbeddedForms exposes the built-in form definition files.
func EmbeddedForms() fs.FS {
	return forms.DefinitionsFS()
}
