// Package validation implements a constraint-table form validator. A Table is
// an ordered list of per-field constraints, each a list of rule closures.
// Validate checks every field independently, never short-circuiting on an
// earlier failure, and returns a Result whose Errors map holds a message for
// each failing field and nothing for passing ones.
//
// Two failure kinds exist: KindValidation when a value violates a constraint,
// and KindParse when a date or number cannot be interpreted. Both surface to
// the user the same way, as the field's message.
package validation
