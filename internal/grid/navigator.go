// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package grid maps directional key input onto a logical two-dimensional
// grid laid over the revealed items. The navigator is headless: it tracks
// the focused index and reports what changed; an adapter moves the real
// focus and speaks the announcements.
package grid

import (
	"fmt"

	"github.com/pdiddy/mixology/pkg/types"
)

// NoFocus is the focused index before the grid first receives focus.
const NoFocus = -1

// Key is a navigator input.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeySpace
)

// Event is one key press. OnCell is true when the event target is the grid
// cell itself rather than a control inside it.
type Event struct {
	Key    Key
	OnCell bool
}

// Announcement is the assistive description of a newly focused item.
type Announcement struct {
	Name            string
	IngredientCount int

	// Position is 1-based.
	Position int
	Total    int
}

func (a Announcement) String() string {
	noun := "ingredients"
	if a.IngredientCount == 1 {
		noun = "ingredient"
	}
	return fmt.Sprintf("%s, %d %s, %d of %d", a.Name, a.IngredientCount, noun, a.Position, a.Total)
}

// Result reports the effect of one event.
type Result struct {
	// Consumed is true for every navigation key, including moves that fail
	// their bounds check, so the caller suppresses default scrolling.
	Consumed bool

	Moved bool
	Index int

	// Announcement is set when Moved.
	Announcement *Announcement

	Activated bool
	Item      *types.Cocktail

	Toggled  bool
	Expanded bool
}

// Navigator is the focus state machine.
type Navigator struct {
	items    []types.Cocktail
	columns  int
	focused  int
	expanded map[string]bool

	// OnIndexChange, when set, is called after every accepted move.
	OnIndexChange func(index int, a Announcement)
}

// New returns a navigator with no focus over no items.
func New(columns int) *Navigator {
	if columns < 1 {
		columns = 1
	}
	return &Navigator{columns: columns, focused: NoFocus, expanded: map[string]bool{}}
}

// SetItems replaces the navigable items (the revealed prefix). The focused
// index is kept, clamped into range when the list shrank.
func (n *Navigator) SetItems(items []types.Cocktail) {
	n.items = items
	if n.focused >= len(items) {
		n.focused = len(items) - 1
	}
}

// SetColumns changes the column count. The focused index is left
// numerically unchanged even though its row and column move.
func (n *Navigator) SetColumns(columns int) {
	if columns < 1 {
		columns = 1
	}
	n.columns = columns
}

// Columns returns the current column count.
func (n *Navigator) Columns() int { return n.columns }

// Focused returns the focused index, or NoFocus.
func (n *Navigator) Focused() int { return n.focused }

// Len returns the number of items.
func (n *Navigator) Len() int { return len(n.items) }

// Focus is called when the grid container receives focus. With no item
// focused yet it focuses the first item.
func (n *Navigator) Focus() Result {
	if n.focused != NoFocus || len(n.items) == 0 {
		return Result{Index: n.focused}
	}
	return n.moveTo(0)
}

// FocusIndex focuses i directly, for pointer input. Out-of-range indices
// are ignored.
func (n *Navigator) FocusIndex(i int) Result {
	if i < 0 || i >= len(n.items) || i == n.focused {
		return Result{Index: n.focused}
	}
	return n.moveTo(i)
}

// Handle applies one key event.
func (n *Navigator) Handle(ev Event) Result {
	switch ev.Key {
	case KeyUp, KeyDown, KeyLeft, KeyRight:
		res := Result{Consumed: true, Index: n.focused}
		if n.focused == NoFocus {
			return res
		}
		if target, ok := n.target(ev.Key); ok {
			res = n.moveTo(target)
			res.Consumed = true
		}
		return res

	case KeyEnter:
		if !ev.OnCell || n.focused == NoFocus {
			return Result{Index: n.focused}
		}
		item := n.items[n.focused]
		return Result{Consumed: true, Index: n.focused, Activated: true, Item: &item}

	case KeySpace:
		if n.focused == NoFocus {
			return Result{Consumed: true, Index: n.focused}
		}
		key := n.items[n.focused].Key()
		n.expanded[key] = !n.expanded[key]
		return Result{Consumed: true, Index: n.focused, Toggled: true, Expanded: n.expanded[key]}
	}
	return Result{Index: n.focused}
}

// target computes the destination of a directional key, reporting false
// when the move would leave the grid or cross a row edge.
func (n *Navigator) target(k Key) (int, bool) {
	i, w, count := n.focused, n.columns, len(n.items)
	col := i % w
	switch k {
	case KeyRight:
		return i + 1, col < w-1 && i+1 < count
	case KeyLeft:
		return i - 1, col > 0
	case KeyDown:
		return i + w, i+w < count
	case KeyUp:
		return i - w, i-w >= 0
	}
	return i, false
}

func (n *Navigator) moveTo(i int) Result {
	n.focused = i
	a := n.announce(i)
	if n.OnIndexChange != nil {
		n.OnIndexChange(i, a)
	}
	return Result{Consumed: true, Moved: true, Index: i, Announcement: &a}
}

func (n *Navigator) announce(i int) Announcement {
	c := n.items[i]
	return Announcement{
		Name:            c.Name,
		IngredientCount: len(c.Ingredients),
		Position:        i + 1,
		Total:           len(n.items),
	}
}

// Expanded reports whether the item at i is expanded.
func (n *Navigator) Expanded(i int) bool {
	if i < 0 || i >= len(n.items) {
		return false
	}
	return n.expanded[n.items[i].Key()]
}
