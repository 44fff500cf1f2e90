// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the cocktail browser.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Open shows the focused cocktail's detail view.
	Open key.Binding
	// Expand toggles the focused cell's ingredient list in place.
	Expand key.Binding

	Search     key.Binding
	Ingredient key.Binding
	Back       key.Binding

	CycleClassification key.Binding
	CycleCategory       key.Binding
	CycleGlass          key.Binding
	ClearFilters        key.Binding

	Save    key.Binding
	Delete  key.Binding
	Random  key.Binding
	Refresh key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in binding set. Arrow keys move on the grid;
// vim-style letters are not bound because the letters drive filters.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "right"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Expand: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "ingredients"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Ingredient: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "ingredient"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	CycleClassification: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "alcoholic"),
	),
	CycleCategory: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "category"),
	),
	CycleGlass: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "glass"),
	),
	ClearFilters: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear filters"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Random: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "random"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("C-r", "retry"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// helpBindings is the order bindings appear in the help bar.
func (k KeyMap) helpBindings() []key.Binding {
	return []key.Binding{
		k.Open, k.Expand, k.Search, k.CycleClassification, k.CycleCategory,
		k.CycleGlass, k.Ingredient, k.ClearFilters, k.Save, k.Delete, k.Random, k.Quit,
	}
}
