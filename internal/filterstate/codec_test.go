// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filterstate

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mixology/pkg/types"
)

// --- fake persister ---

type memPersister struct {
	saved   *types.FilterSet
	loadErr error
	saveErr error
	saves   int
	clears  int
}

func (m *memPersister) LoadFilter(context.Context) (types.FilterSet, bool, error) {
	if m.loadErr != nil {
		return types.FilterSet{}, false, m.loadErr
	}
	if m.saved == nil {
		return types.FilterSet{}, false, nil
	}
	return *m.saved, true, nil
}

func (m *memPersister) SaveFilter(_ context.Context, fs types.FilterSet) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = &fs
	return nil
}

func (m *memPersister) ClearFilter(context.Context) error {
	m.clears++
	m.saved = nil
	return nil
}

// --- Encode / Decode ---

func TestEncodeOmitsUnsetFields(t *testing.T) {
	got := Encode(types.FilterSet{Category: types.Ptr("Shot"), Glass: types.Ptr("")})
	assert.Equal(t, url.Values{KeyCategory: {"Shot"}}, got)

	assert.Empty(t, Encode(types.FilterSet{}))
}

func TestEncodeKeepsValuesVerbatim(t *testing.T) {
	got := Encode(types.FilterSet{
		Category:   types.Ptr(" Shot"),
		Ingredient: types.Ptr("gin, lime"),
	})
	assert.Equal(t, " Shot", got.Get(KeyCategory))
	assert.Equal(t, "gin, lime", got.Get(KeyIngredient))
}

func TestDecodeAbsentIsUnset(t *testing.T) {
	fs := Decode(url.Values{KeyQuery: {"sour"}, KeyGlass: {""}})
	assert.True(t, fs.IsEmpty())
	assert.Nil(t, fs.Glass)
}

func TestDecodeRepeatedIngredientKeys(t *testing.T) {
	fs := Decode(url.Values{KeyIngredient: {"gin", "lime"}})
	require.NotNil(t, fs.Ingredient)
	assert.Equal(t, "gin,lime", *fs.Ingredient)
}

func TestRoundTrip(t *testing.T) {
	sets := []types.FilterSet{
		{},
		{Classification: types.Ptr("Alcoholic")},
		{Category: types.Ptr("Ordinary Drink")},
		{Glass: types.Ptr("Cocktail glass")},
		{Ingredient: types.Ptr("Vodka")},
		{Ingredient: types.Ptr("Vodka,Lime")},
		{
			Classification: types.Ptr("Non alcoholic"),
			Category:       types.Ptr("Shake"),
			Glass:          types.Ptr("Mason jar"),
			Ingredient:     types.Ptr("Milk"),
		},
		{Category: types.Ptr("Coffee / Tea"), Glass: types.Ptr("Irish coffee cup")},
		{Category: types.Ptr(" Shot")},
		{Glass: types.Ptr("Highball glass ")},
		{Ingredient: types.Ptr("Vodka, Lime")},
		{Ingredient: types.Ptr(" gin ,, lime ")},
		{Classification: types.Ptr("   ")},
		{Glass: types.Ptr("")},
	}
	for _, fs := range sets {
		got := Decode(Encode(fs))
		assert.True(t, fs.Equal(got), "round trip of %v gave %v", Encode(fs), Encode(got))

		// Through the string form as well.
		parsed, err := url.ParseQuery(Encode(fs).Encode())
		require.NoError(t, err)
		assert.True(t, fs.Equal(Decode(parsed)))
	}
}

// --- Codec.Restore ---

func TestRestoreFromStorage(t *testing.T) {
	h := NewHistory(url.Values{KeyQuery: {"sour"}})
	p := &memPersister{saved: &types.FilterSet{Category: types.Ptr("Cocktail")}}
	c := NewCodec(h, p, nil)

	fs, restored := c.Restore(context.Background())
	assert.True(t, restored)
	assert.Equal(t, "Cocktail", *fs.Category)
	assert.Equal(t, "Cocktail", h.Query().Get(KeyCategory))
	assert.Equal(t, "sour", h.Query().Get(KeyQuery), "restore keeps the text query")
	assert.Equal(t, 1, h.Len(), "restore replaces the entry")
}

func TestRestoreSkippedWhenQueryHasFilterKeys(t *testing.T) {
	h := NewHistory(url.Values{KeyGlass: {"Coupe"}})
	p := &memPersister{saved: &types.FilterSet{Category: types.Ptr("Cocktail")}}
	c := NewCodec(h, p, nil)

	fs, restored := c.Restore(context.Background())
	assert.False(t, restored)
	assert.Equal(t, "Coupe", *fs.Glass)
	assert.Nil(t, fs.Category)
	assert.Empty(t, h.Query().Get(KeyCategory))
}

func TestRestoreFailureLeavesQueryUntouched(t *testing.T) {
	initial := url.Values{KeyQuery: {"fizz"}}

	tests := []struct {
		name string
		p    *memPersister
	}{
		{"load error", &memPersister{loadErr: errors.New("disk gone")}},
		{"nothing saved", &memPersister{}},
		{"all unset", &memPersister{saved: &types.FilterSet{}}},
		{"only empty strings", &memPersister{saved: &types.FilterSet{Glass: types.Ptr("")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(initial)
			c := NewCodec(h, tt.p, nil)

			fs, restored := c.Restore(context.Background())
			assert.False(t, restored)
			assert.True(t, fs.IsEmpty())
			assert.Equal(t, initial, h.Query())
		})
	}
}

// --- Codec.Update ---

func TestUpdatePersistsAndReplaces(t *testing.T) {
	h := NewHistory(url.Values{KeyQuery: {"rum"}, KeyGlass: {"Coupe"}})
	p := &memPersister{}
	c := NewCodec(h, p, nil)

	err := c.Update(context.Background(), types.FilterSet{Category: types.Ptr("Punch / Party Drink")})
	require.NoError(t, err)

	q := h.Query()
	assert.Equal(t, "rum", q.Get(KeyQuery))
	assert.Equal(t, "Punch / Party Drink", q.Get(KeyCategory))
	_, hasGlass := q[KeyGlass]
	assert.False(t, hasGlass, "fields absent from the new set are removed")
	assert.Equal(t, 1, h.Len())

	require.NotNil(t, p.saved)
	assert.Equal(t, "Punch / Party Drink", *p.saved.Category)
	assert.True(t, c.Current().Equal(*p.saved))
}

func TestUpdateEmptyClearsStorage(t *testing.T) {
	h := NewHistory(url.Values{KeyCategory: {"Shot"}})
	p := &memPersister{saved: &types.FilterSet{Category: types.Ptr("Shot")}}
	c := NewCodec(h, p, nil)

	require.NoError(t, c.Update(context.Background(), types.FilterSet{}))
	assert.Nil(t, p.saved)
	assert.Equal(t, 1, p.clears)
	assert.False(t, HasFilterKeys(h.Query()))
}

func TestUpdateStorageFailureStillRewritesQuery(t *testing.T) {
	h := NewHistory(nil)
	p := &memPersister{saveErr: types.ErrStorage}
	c := NewCodec(h, p, nil)

	err := c.Update(context.Background(), types.FilterSet{Glass: types.Ptr("Coupe")})
	assert.ErrorIs(t, err, types.ErrStorage)
	assert.Equal(t, "Coupe", h.Query().Get(KeyGlass))
}

func TestSetText(t *testing.T) {
	h := NewHistory(url.Values{KeyCategory: {"Shot"}})
	c := NewCodec(h, &memPersister{}, nil)

	c.SetText("b-52")
	assert.Equal(t, "b-52", c.Text())
	assert.Equal(t, "Shot", h.Query().Get(KeyCategory))

	c.SetText("")
	_, ok := h.Query()[KeyQuery]
	assert.False(t, ok)
}

// --- History ---

func TestHistory(t *testing.T) {
	h, err := ParseHistory("q=gin&glass=Coupe")
	require.NoError(t, err)
	assert.Equal(t, "glass=Coupe&q=gin", h.String())

	h.Push(url.Values{KeyQuery: {"rum"}})
	assert.Equal(t, 2, h.Len())
	h.Replace(url.Values{KeyQuery: {"vodka"}})
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "vodka", h.Query().Get(KeyQuery))

	assert.True(t, h.Back())
	assert.Equal(t, "gin", h.Query().Get(KeyQuery))
	assert.False(t, h.Back())

	// Query returns a copy.
	q := h.Query()
	q.Set(KeyQuery, "mutated")
	assert.Equal(t, "gin", h.Query().Get(KeyQuery))
}

func TestDetailEntries(t *testing.T) {
	h := NewHistory(url.Values{KeyQuery: {"gin"}, KeyGlass: {"Coupe"}})
	c := NewCodec(h, &memPersister{}, nil)

	assert.False(t, c.CloseDetail(), "list entry is not popped")

	require.True(t, c.OpenDetail("11003"))
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "11003", c.DetailID())
	assert.Equal(t, "gin", c.Text())
	assert.Equal(t, "Coupe", *c.Current().Glass)

	assert.True(t, c.CloseDetail())
	assert.Equal(t, 1, h.Len())
	assert.Empty(t, c.DetailID())
	assert.Equal(t, "gin", c.Text())
}

type flatLocation struct{ q url.Values }

func (f *flatLocation) Query() url.Values    { return cloneValues(f.q) }
func (f *flatLocation) Replace(v url.Values) { f.q = cloneValues(v) }

func TestDetailWithoutHistory(t *testing.T) {
	loc := &flatLocation{q: url.Values{}}
	c := NewCodec(loc, &memPersister{}, nil)

	assert.False(t, c.OpenDetail("11003"))
	assert.Empty(t, c.DetailID())
	assert.False(t, c.CloseDetail())
}
