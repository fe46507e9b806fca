// Package forms declares the demo forms as constraint tables and runs their
// mounts. Definitions are YAML documents (see definitions/) compiled into
// validation tables; a Form holds the values of one mount, recomputes its
// error map on every pass and hands valid submissions to a caller-supplied
// Sink.
//
// Two definitions ship embedded: "clients", the client-intake form with
// length, digit and minimum-date rules, and "user", the generic user form with
// required names and an 18–65 age range.
package forms
