// Package terminal renders the clock and stopwatch widgets as bubbletea
// programs. Widget updates reach the program through a one-slot feed, so a
// slow terminal drops intermediate frames instead of stalling the tick
// goroutine.
package terminal
