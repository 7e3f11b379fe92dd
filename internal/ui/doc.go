// Package ui styles terminal output with lipgloss.
//
// A [Palette] holds the handful of styles the CLI uses for headings, status lines and hints.
// [Default] is used by the commands; tests and callers that need a plain palette can build
// one with [NewPalette].
package ui
