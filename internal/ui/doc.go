// Package ui implements an interactive terminal browser for the ranked movie
// list using bubbletea's Elm architecture.
//
// The [Model] implements the standard Init/Update/View pattern over a
// [list.Model] of movies ordered best-first. Rankings are recomputed on load
// and on refresh, the same operation the web listing performs. Keyboard
// navigation uses vim-style bindings (j/k, r to refresh, q to quit).
package ui
