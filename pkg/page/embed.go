package page

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed static/*
var embeddedStatic embed.FS

// StylesheetName is the stylesheet served under the theme asset prefix.
const StylesheetName = "widgetdemo.css"

// TemplatesFS exposes the embedded page templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// StaticFS exposes the embedded stylesheet so it can be served over HTTP.
func StaticFS() fs.FS {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		return embeddedStatic
	}
	return sub
}
