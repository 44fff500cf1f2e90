// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package grid

// Column breakpoints in terminal cells.
const (
	breakpointTwo   = 60
	breakpointThree = 100
	breakpointFour  = 140
)

// ColumnsForWidth maps a viewport width to 1, 2, 3 or 4 columns.
func ColumnsForWidth(width int) int {
	switch {
	case width >= breakpointFour:
		return 4
	case width >= breakpointThree:
		return 3
	case width >= breakpointTwo:
		return 2
	default:
		return 1
	}
}

// CellAttrs are the accessibility attributes of one grid cell. Indices are
// 1-based.
type CellAttrs struct {
	RowIndex int
	ColIndex int
	RowCount int
	ColCount int
}

// Cell returns the attributes for item i.
func (n *Navigator) Cell(i int) CellAttrs {
	w := n.columns
	return CellAttrs{
		RowIndex: i/w + 1,
		ColIndex: i%w + 1,
		RowCount: n.Rows(),
		ColCount: w,
	}
}

// Rows returns the number of grid rows.
func (n *Navigator) Rows() int {
	return (len(n.items) + n.columns - 1) / n.columns
}

// Priority is the urgency of an announcement channel.
type Priority string

const (
	// Polite waits for the reader to finish; used for focus moves.
	Polite Priority = "polite"
	// Assertive interrupts; used for failures.
	Assertive Priority = "assertive"
)

// Announcer is an assistive announcement surface.
type Announcer interface {
	Announce(p Priority, message string)
}

// Announce wires a navigator's index changes to the polite channel of a.
func Announce(n *Navigator, a Announcer) {
	n.OnIndexChange = func(_ int, ann Announcement) {
		a.Announce(Polite, ann.String())
	}
}
