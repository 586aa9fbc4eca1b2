// Package ui implements the interactive watchlist using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [ListView] : Browse movies, toggle watched status, delete, retry failed operations
//  2. [FormView] : Enter a name and release date to add a movie
//
// The (view) [Model] wraps a [tracker.ListController]. Key presses become controller operations,
// which return commands; their completion messages are handed back to the controller in Update,
// after which the bubbles list is rebuilt from the controller's items.
//
// Keyboard navigation uses vim-style bindings (j/k, a, w, d, r, q) with contextual help displayed
// via charmbracelet/bubbles/help.
package ui
