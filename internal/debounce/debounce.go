// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package debounce settles free-text input. Each keystroke replaces the
// pending value and restarts the wait; only a value left untouched for the
// full delay is committed. The package is clock-free: Type hands back a
// Ticket that the caller delivers to Expire once the delay elapses.
package debounce

import "time"

// DefaultDelay is the settle delay.
const DefaultDelay = 300 * time.Millisecond

// State is the input phase.
type State int

const (
	Idle State = iota
	Pending
	Committed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Committed:
		return "committed"
	}
	return "idle"
}

// Ticket identifies one pending wait.
type Ticket struct{ gen uint64 }

// Input is the debounced text state machine.
type Input struct {
	delay     time.Duration
	state     State
	pending   string
	committed string
	gen       uint64
}

// New returns an idle input. A non-positive delay uses DefaultDelay.
func New(delay time.Duration) *Input {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Input{delay: delay}
}

// Delay returns the settle delay.
func (in *Input) Delay() time.Duration { return in.delay }

// Type records a new value and restarts the wait.
func (in *Input) Type(text string) Ticket {
	in.gen++
	in.pending = text
	in.state = Pending
	return Ticket{gen: in.gen}
}

// Expire commits the pending value if t is the latest wait. It reports the
// committed text and whether it differs from the previous commit.
func (in *Input) Expire(t Ticket) (string, bool) {
	if in.state != Pending || t.gen != in.gen {
		return in.committed, false
	}
	return in.commit()
}

// Flush commits the pending value immediately, as on Enter.
func (in *Input) Flush() (string, bool) {
	if in.state != Pending {
		return in.committed, false
	}
	in.gen++
	return in.commit()
}

// Cancel drops the pending value and returns to the last committed state.
func (in *Input) Cancel() {
	if in.state != Pending {
		return
	}
	in.gen++
	in.pending = in.committed
	in.state = Committed
	if in.committed == "" {
		in.state = Idle
	}
}

// Reset sets the committed value directly, as when state is restored from
// a location, without passing through Pending.
func (in *Input) Reset(text string) {
	in.gen++
	in.pending = text
	in.committed = text
	in.state = Committed
	if text == "" {
		in.state = Idle
	}
}

func (in *Input) commit() (string, bool) {
	changed := in.pending != in.committed
	in.committed = in.pending
	in.state = Committed
	return in.committed, changed
}

// State returns the current phase.
func (in *Input) State() State { return in.state }

// Pending returns the latest typed value.
func (in *Input) Pending() string { return in.pending }

// Value returns the last committed value.
func (in *Input) Value() string { return in.committed }
