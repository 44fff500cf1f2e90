// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filterstate

import "net/url"

// History is an in-memory stack of navigation entries. The top entry is
// the current Location.
type History struct {
	entries []url.Values
}

// NewHistory starts a history with initial as its only entry.
func NewHistory(initial url.Values) *History {
	if initial == nil {
		initial = url.Values{}
	}
	return &History{entries: []url.Values{cloneValues(initial)}}
}

// ParseHistory starts a history from an encoded query string.
func ParseHistory(raw string) (*History, error) {
	v, err := url.ParseQuery(raw)
	if err != nil {
		return nil, err
	}
	return NewHistory(v), nil
}

// Query returns a copy of the current entry.
func (h *History) Query() url.Values {
	return cloneValues(h.entries[len(h.entries)-1])
}

// Replace overwrites the current entry.
func (h *History) Replace(v url.Values) {
	h.entries[len(h.entries)-1] = cloneValues(v)
}

// Push adds a new entry on top.
func (h *History) Push(v url.Values) {
	h.entries = append(h.entries, cloneValues(v))
}

// Back drops the current entry. It reports false at the first entry.
func (h *History) Back() bool {
	if len(h.entries) == 1 {
		return false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return true
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// String encodes the current entry.
func (h *History) String() string {
	return h.entries[len(h.entries)-1].Encode()
}
