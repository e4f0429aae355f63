// Package ui implements Skipper's terminal picker on Bubble Tea.
//
// The Model drives one state.Controller at a time. Init starts the single
// fetch and shows a spinner; the result lands as a message tagged with
// the controller's generation, so a result from a replaced controller is
// ignored. A failed load shows the error and offers only a full reload,
// which builds a fresh controller.
//
// Once ready the view is a header, the size search input, a grid of skip
// cards (one to three columns depending on width) and a status line. A
// footer with the selected skip and the Back and Continue actions appears
// while something is selected. Continue opens a confirmation modal and
// reports the skip through Options.OnContinue.
//
// Warnings and errors logged through TUILogHandler appear briefly in the
// status line. Update never logs at those levels directly because the
// handler sends back into the running program; logCmd defers the call to
// a command goroutine.
package ui
