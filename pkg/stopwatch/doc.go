// Package stopwatch implements the elapsed-time timer widget. Elapsed time is
// always derived from the wall clock as now minus the run segment's anchor, so
// a late or skipped tick makes the display jump forward instead of drifting.
// Stop freezes the value; Start re-anchors so accumulated time carries over;
// Reset returns to zero from any state.
package stopwatch
