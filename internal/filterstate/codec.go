// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filterstate encodes the active filter set and free-text query
// into a query representation (url.Values under fixed keys), restores a
// persisted filter set on first load, and keeps the durable copy and the
// query in step on every update.
package filterstate

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/mixology/pkg/types"
)

// Query representation keys.
const (
	KeyQuery          = "q"
	KeyCategory       = "category"
	KeyGlass          = "glass"
	KeyClassification = "alcoholic"
	KeyIngredient     = "ingredient"

	// KeyDrink names the record shown by a detail entry.
	KeyDrink = "drink"
)

// filterKeys are the keys owned by the filter set, in encoding order.
var filterKeys = []string{KeyClassification, KeyCategory, KeyGlass, KeyIngredient}

// Encode writes each set field of fs under its key, byte for byte. Unset
// and empty fields are omitted entirely. The ingredient tag is already one
// comma-joined value and is written as is.
func Encode(fs types.FilterSet) url.Values {
	v := url.Values{}
	put := func(key string, p *string) {
		if p != nil && *p != "" {
			v.Set(key, *p)
		}
	}
	put(KeyClassification, fs.Classification)
	put(KeyCategory, fs.Category)
	put(KeyGlass, fs.Glass)
	put(KeyIngredient, fs.Ingredient)
	return v
}

// Decode reads the fixed keys back verbatim, so Decode(Encode(fs)) equals
// fs. A missing or empty key decodes to an unset field. Repeated
// ingredient keys are comma-joined into one tag value.
func Decode(v url.Values) types.FilterSet {
	get := func(key string) *string {
		if s := v.Get(key); s != "" {
			return &s
		}
		return nil
	}
	fs := types.FilterSet{
		Classification: get(KeyClassification),
		Category:       get(KeyCategory),
		Glass:          get(KeyGlass),
	}
	var parts []string
	for _, p := range v[KeyIngredient] {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		fs.Ingredient = types.Ptr(strings.Join(parts, ","))
	}
	return fs
}

// HasFilterKeys reports whether any filter key is present in v.
func HasFilterKeys(v url.Values) bool {
	for _, k := range filterKeys {
		if _, ok := v[k]; ok {
			return true
		}
	}
	return false
}

// Location is the current navigation entry's query representation.
type Location interface {
	Query() url.Values
	// Replace overwrites the current entry without adding history.
	Replace(url.Values)
}

// Stack is a Location that keeps earlier entries for back navigation.
type Stack interface {
	Location
	Push(url.Values)
	Back() bool
}

// Persister stores one filter set durably.
type Persister interface {
	LoadFilter(ctx context.Context) (types.FilterSet, bool, error)
	SaveFilter(ctx context.Context, fs types.FilterSet) error
	ClearFilter(ctx context.Context) error
}

// Codec ties a Location to a Persister.
type Codec struct {
	loc    Location
	store  Persister
	logger *zap.Logger
}

// NewCodec returns a codec over loc and store. A nil logger discards logs.
func NewCodec(loc Location, store Persister, logger *zap.Logger) *Codec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Codec{loc: loc, store: store, logger: logger}
}

// Current decodes the filter set from the location.
func (c *Codec) Current() types.FilterSet {
	return Decode(c.loc.Query())
}

// Text returns the free-text query from the location.
func (c *Codec) Text() string {
	return c.loc.Query().Get(KeyQuery)
}

// Restore runs on initial load. When the location carries none of the
// filter keys, it loads the persisted set and writes it into the location.
// A failed load or an all-unset set leaves the location untouched.
// restored reports whether the location changed.
func (c *Codec) Restore(ctx context.Context) (fs types.FilterSet, restored bool) {
	q := c.loc.Query()
	if HasFilterKeys(q) {
		return Decode(q), false
	}
	saved, found, err := c.store.LoadFilter(ctx)
	if err != nil {
		c.logger.Warn("restoring filter state failed", zap.Error(err))
		return types.FilterSet{}, false
	}
	if !found || Decode(Encode(saved)).IsEmpty() {
		return types.FilterSet{}, false
	}
	c.loc.Replace(withFilter(q, saved))
	c.logger.Debug("filter state restored", zap.Any("filter", Encode(saved)))
	return Decode(c.loc.Query()), true
}

// Update makes fs the active set: it rewrites the location's filter keys
// in place (replacing the navigation entry, keeping the text query) and
// persists the set. An all-unset set clears the durable copy. The location
// is rewritten even when persisting fails; the storage error is returned
// for the caller to surface.
func (c *Codec) Update(ctx context.Context, fs types.FilterSet) error {
	c.loc.Replace(withFilter(c.loc.Query(), fs))

	normalized := Decode(Encode(fs))
	if normalized.IsEmpty() {
		return c.store.ClearFilter(ctx)
	}
	return c.store.SaveFilter(ctx, normalized)
}

// SetText rewrites the free-text key in place. Empty text removes it.
func (c *Codec) SetText(text string) {
	q := cloneValues(c.loc.Query())
	if text == "" {
		q.Del(KeyQuery)
	} else {
		q.Set(KeyQuery, text)
	}
	c.loc.Replace(q)
}

// OpenDetail pushes a navigation entry for the record id on top of the
// current one, keeping its filter and text keys. It reports false when the
// location keeps no history.
func (c *Codec) OpenDetail(id string) bool {
	st, ok := c.loc.(Stack)
	if !ok {
		return false
	}
	q := cloneValues(c.loc.Query())
	q.Set(KeyDrink, id)
	st.Push(q)
	return true
}

// DetailID returns the record id of the current entry, or "".
func (c *Codec) DetailID() string {
	return c.loc.Query().Get(KeyDrink)
}

// CloseDetail pops the current entry when it is a detail entry.
func (c *Codec) CloseDetail() bool {
	st, ok := c.loc.(Stack)
	if !ok || c.DetailID() == "" {
		return false
	}
	return st.Back()
}

// withFilter returns q with its filter keys replaced by fs's encoding.
func withFilter(q url.Values, fs types.FilterSet) url.Values {
	out := cloneValues(q)
	for _, k := range filterKeys {
		out.Del(k)
	}
	for k, vs := range Encode(fs) {
		out[k] = vs
	}
	return out
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
