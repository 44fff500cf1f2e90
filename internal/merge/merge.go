// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge combines the remote catalog result and the local
// collection snapshot into one ordered list under the active filter set
// and text query.
//
// Local records shadow remote records sharing their id. Local matches come
// first in snapshot order, then remote matches in catalog order. A failed
// remote fetch never drops local data: the merge proceeds with local
// candidates only and reports the failure separately.
package merge

import (
	"strings"

	"github.com/pdiddy/mixology/pkg/types"
)

// RemoteResult is the outcome of the primary listing query.
type RemoteResult struct {
	Records []types.Cocktail

	// Err is set when the fetch failed; Records is then ignored.
	Err error
}

// State is the browsing context the engine runs over. The caller owns it
// and passes it in; the engine keeps nothing between calls.
type State struct {
	Remote RemoteResult
	Local  []types.Cocktail
	Filter types.FilterSet

	// Query is the committed free-text query; empty matches every name.
	Query string
}

// Output is the merged, filtered list plus side information.
type Output struct {
	Records []types.Cocktail

	// RemoteErr reports a remote failure the caller should surface without
	// blocking. Cancellation is never reported.
	RemoteErr error

	// Shadowed counts remote records suppressed by a local id.
	Shadowed int
}

// Merge runs the engine over st. It is pure and never fails; an empty
// result is a valid result.
//
// Classification, category and glass match case-insensitively and exactly.
// The ingredient value is split on commas and every part must be contained
// in some ingredient name or tag of the record, so "rum,lime" narrows
// where "rum" alone would not. The text query is a case-insensitive
// substring of the name.
func Merge(st State) Output {
	out := Output{Records: []types.Cocktail{}}

	localIDs := make(map[string]struct{}, len(st.Local))
	for _, c := range st.Local {
		localIDs[c.ID] = struct{}{}
	}

	query := strings.ToLower(strings.TrimSpace(st.Query))
	f := compile(st.Filter)

	for _, c := range st.Local {
		if f.matches(c, query) {
			out.Records = append(out.Records, c)
		}
	}

	if st.Remote.Err != nil {
		if !types.IsCancelled(st.Remote.Err) {
			out.RemoteErr = st.Remote.Err
		}
		return out
	}
	for _, c := range st.Remote.Records {
		if _, shadowed := localIDs[c.ID]; shadowed {
			out.Shadowed++
			continue
		}
		if f.matches(c, query) {
			out.Records = append(out.Records, c)
		}
	}
	return out
}

// accepts reports whether c satisfies fs and the text query.
func accepts(c types.Cocktail, fs types.FilterSet, query string) bool {
	return compile(fs).matches(c, strings.ToLower(strings.TrimSpace(query)))
}

// filter is a FilterSet with its values lowercased once.
type filter struct {
	classification, category, glass *string

	// ingredient holds the comma-separated parts of the tag value.
	ingredient []string
}

func compile(fs types.FilterSet) filter {
	lower := func(p *string) *string {
		if p == nil {
			return nil
		}
		s := strings.ToLower(strings.TrimSpace(*p))
		if s == "" {
			return nil
		}
		return &s
	}
	return filter{
		classification: lower(fs.Classification),
		category:       lower(fs.Category),
		glass:          lower(fs.Glass),
		ingredient:     tagParts(lower(fs.Ingredient)),
	}
}

// tagParts splits a comma-joined tag value into its non-blank parts.
func tagParts(p *string) []string {
	if p == nil {
		return nil
	}
	var parts []string
	for _, s := range strings.Split(*p, ",") {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

// matches applies every set field and then the name query. query is
// already lowercased.
func (f filter) matches(c types.Cocktail, query string) bool {
	if f.classification != nil && strings.ToLower(string(c.Classification)) != *f.classification {
		return false
	}
	if f.category != nil && strings.ToLower(c.Category) != *f.category {
		return false
	}
	if f.glass != nil && strings.ToLower(c.Glass) != *f.glass {
		return false
	}
	for _, part := range f.ingredient {
		if !mentions(c, part) {
			return false
		}
	}
	if query != "" && !strings.Contains(strings.ToLower(c.Name), query) {
		return false
	}
	return true
}

// mentions reports whether any ingredient name or tag contains value.
func mentions(c types.Cocktail, value string) bool {
	for _, ing := range c.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), value) {
			return true
		}
	}
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), value) {
			return true
		}
	}
	return false
}
