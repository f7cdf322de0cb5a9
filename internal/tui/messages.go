// Package tui provides the Bubble Tea models for the interactive UI.
// Every view renders from a store snapshot and mutates state only through
// the store's operations; component-local state (inputs, cursors, filters)
// never leaks back into the store.
package tui

import tea "github.com/charmbracelet/bubbletea"

// stateChangedMsg signals that a store operation ran and every view must
// re-derive from a fresh snapshot. The root model handles it.
type stateChangedMsg struct{}

// refresh is the command every view returns after invoking a store action.
func refresh() tea.Msg { return stateChangedMsg{} }
