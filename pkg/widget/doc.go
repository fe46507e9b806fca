// Package widget holds the two primitives every live widget is built from: a
// Ticker, the cancellable periodic task a widget registers when it is mounted
// and releases when it is torn down, and Cell, an observable value whose
// writes notify subscribers so a view can redraw.
package widget
