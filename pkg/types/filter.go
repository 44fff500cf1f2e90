// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FilterSet is the active structured filter. A nil field is a wildcard; a
// record matches the set iff every non-nil field matches.
type FilterSet struct {
	Classification *string `json:"classification,omitempty" yaml:"classification,omitempty"`
	Category       *string `json:"category,omitempty" yaml:"category,omitempty"`
	Glass          *string `json:"glass,omitempty" yaml:"glass,omitempty"`

	// Ingredient matches against ingredient names and tags.
	Ingredient *string `json:"ingredient,omitempty" yaml:"ingredient,omitempty"`
}

// IsEmpty reports whether every field is unset. An empty string counts as
// unset.
func (f FilterSet) IsEmpty() bool {
	return unset(f.Classification) && unset(f.Category) && unset(f.Glass) && unset(f.Ingredient)
}

// Equal reports whether two sets have the same fields set to the same
// values. An empty string equals an unset field.
func (f FilterSet) Equal(o FilterSet) bool {
	return eqPtr(f.Classification, o.Classification) &&
		eqPtr(f.Category, o.Category) &&
		eqPtr(f.Glass, o.Glass) &&
		eqPtr(f.Ingredient, o.Ingredient)
}

// Ptr returns a pointer to s, for building filter sets inline.
func Ptr(s string) *string { return &s }

func unset(p *string) bool { return p == nil || *p == "" }

func eqPtr(a, b *string) bool {
	if unset(a) || unset(b) {
		return unset(a) && unset(b)
	}
	return *a == *b
}
