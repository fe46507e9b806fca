// Package page renders the server-side widget pages.
//
// Templates are pongo2 files embedded under templates/ and every page extends
// layout.tmpl, which receives the navigation menu and the CSS custom
// properties resolved from the active go-theme selection. Field values echoed
// back verbatim rely on pongo2's autoescaping; the submission summary goes
// through the "sanitize" filter, backed by bluemonday's strict policy.
package page
