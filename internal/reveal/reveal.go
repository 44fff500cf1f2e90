// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reveal exposes a growing prefix of a result list. A visibility
// trigger starts a load; after a settle delay the next batch is appended.
// The controller owns no timers: Trigger hands back a ticket and the
// caller delivers it to Settle once SettleDelay has elapsed.
package reveal

import (
	"slices"
	"time"

	"github.com/pdiddy/mixology/pkg/types"
)

// Defaults used when the configuration leaves a value unset.
const (
	DefaultInitialBatch   = 8
	DefaultBatchIncrement = 5
	DefaultSettleDelay    = 300 * time.Millisecond
)

// Ticket identifies one accepted trigger.
type Ticket struct {
	gen uint64
}

// Controller tracks how much of the source is revealed.
type Controller struct {
	initial   int
	increment int
	settle    time.Duration

	source   []types.Cocktail
	revealed int
	loading  bool

	// gen changes on every reset so tickets from before it are dropped.
	gen uint64
}

// New returns a controller with an empty source.
func New(cfg types.BrowseConfig) *Controller {
	c := &Controller{
		initial:   cfg.InitialBatch,
		increment: cfg.BatchIncrement,
		settle:    cfg.SettleDelay,
	}
	if c.initial <= 0 {
		c.initial = DefaultInitialBatch
	}
	if c.increment <= 0 {
		c.increment = DefaultBatchIncrement
	}
	if c.settle <= 0 {
		c.settle = DefaultSettleDelay
	}
	return c
}

// SetSource replaces the source list. When the content differs from the
// current source (not just its length) the revealed count resets to the
// initial batch and any pending load is dropped. It reports whether a
// reset happened.
func (c *Controller) SetSource(items []types.Cocktail) bool {
	if c.source != nil && sameContent(c.source, items) {
		c.source = items
		return false
	}
	c.source = items
	c.revealed = min(c.initial, len(items))
	c.loading = false
	c.gen++
	return true
}

// Trigger handles a visibility signal. It is accepted only when more items
// remain and no load is pending; otherwise it is a no-op. On acceptance
// the caller must deliver the ticket to Settle after SettleDelay.
func (c *Controller) Trigger() (Ticket, bool) {
	if c.loading || c.revealed >= len(c.source) {
		return Ticket{}, false
	}
	c.loading = true
	return Ticket{gen: c.gen}, true
}

// Settle appends the next batch for an accepted trigger and returns how
// many items were appended. Tickets issued before a reset append nothing.
func (c *Controller) Settle(t Ticket) int {
	if t.gen != c.gen || !c.loading {
		return 0
	}
	n := min(c.increment, len(c.source)-c.revealed)
	c.revealed += n
	c.loading = false
	return n
}

// Visible returns the revealed prefix of the source.
func (c *Controller) Visible() []types.Cocktail {
	return c.source[:c.revealed]
}

// Revealed returns the length of the revealed prefix.
func (c *Controller) Revealed() int { return c.revealed }

// Len returns the length of the source.
func (c *Controller) Len() int { return len(c.source) }

// LoadingMore reports whether a trigger is waiting to settle.
func (c *Controller) LoadingMore() bool { return c.loading }

// HasMore reports whether part of the source is still hidden.
func (c *Controller) HasMore() bool { return c.revealed < len(c.source) }

// SettleDelay is how long the caller waits between Trigger and Settle.
func (c *Controller) SettleDelay() time.Duration { return c.settle }

func sameContent(a, b []types.Cocktail) bool {
	return slices.EqualFunc(a, b, func(x, y types.Cocktail) bool {
		return x.Key() == y.Key() && x.Name == y.Name && x.DateModified.Equal(y.DateModified)
	})
}
