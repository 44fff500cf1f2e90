// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mixology/internal/browse"
	"github.com/pdiddy/mixology/internal/catalog"
	"github.com/pdiddy/mixology/internal/catalog/catalogtest"
	"github.com/pdiddy/mixology/internal/collection"
	"github.com/pdiddy/mixology/internal/filterstate"
	"github.com/pdiddy/mixology/internal/httputil"
	"github.com/pdiddy/mixology/internal/merge"
	"github.com/pdiddy/mixology/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

type harness struct {
	server  *catalogtest.Server
	session *browse.Session
	history *filterstate.History
	model   Model
}

func newHarness(t *testing.T, drinks ...catalogtest.Drink) *harness {
	t.Helper()
	if len(drinks) == 0 {
		drinks = catalogtest.All()
	}
	srv := catalogtest.NewServer(t, drinks...)

	cfg := types.DefaultConfig()
	cfg.Catalog.BaseURL = srv.URL
	cfg.Browse.SettleDelay = time.Millisecond
	cfg.Browse.Debounce = time.Millisecond
	client := catalog.NewClient(cfg.Catalog, srv.Client(), nil)

	store, err := collection.NewStore(types.CollectionConfig{DataDir: t.TempDir()}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	history := filterstate.NewHistory(nil)
	session := browse.New(client, store, history, nil)
	session.Start(context.Background())

	m := New(context.Background(), session, cfg.Browse, nil)
	m.search.Cursor.SetMode(cursor.CursorHide)
	m.ingredient.Cursor.SetMode(cursor.CursorHide)

	h := &harness{server: srv, session: session, history: history, model: m}
	h.send(t, tea.WindowSizeMsg{Width: 150, Height: 40})
	return h
}

// send delivers msg and runs every resulting command to completion,
// feeding the produced messages back in.
func (h *harness) send(t *testing.T, msg tea.Msg) {
	t.Helper()
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next, cmd := h.model.Update(queue[0])
		queue = queue[1:]
		h.model = next.(Model)
		queue = append(queue, drain(cmd)...)
	}
}

func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func (h *harness) load(t *testing.T) {
	t.Helper()
	h.send(t, listingMsg{listing: h.session.FetchListing(context.Background())})
	h.send(t, optionsMsg{options: h.session.LoadOptions(context.Background())})
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func space() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}} }

func names(cs []types.Cocktail) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func numbered(n int) []catalogtest.Drink {
	out := make([]catalogtest.Drink, n)
	for i := range out {
		out[i] = catalogtest.Drink{
			"idDrink":        fmt.Sprintf("%d", 20000+i),
			"strDrink":       fmt.Sprintf("Drink %02d", i),
			"strIngredient1": "Gin",
		}
	}
	return out
}

func TestListingFocusesFirstItem(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	assert.Equal(t, []string{"Mojito", "Margarita", "Virgin Mojito", "Negroni"}, names(h.model.records))
	assert.Equal(t, 4, h.model.nav.Columns())
	assert.Equal(t, 0, h.model.nav.Focused())
	assert.Equal(t, "Mojito, 3 ingredients, 1 of 4", h.model.live.polite)
	assert.Contains(t, h.model.View(), "Margarita")
}

func TestArrowKeysAnnounce(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	h.send(t, keyMsg(tea.KeyRight))
	assert.Equal(t, 1, h.model.nav.Focused())
	assert.Equal(t, "Margarita, 4 ingredients, 2 of 4", h.model.live.polite)

	// Down from the only row is consumed without moving.
	h.send(t, keyMsg(tea.KeyDown))
	assert.Equal(t, 1, h.model.nav.Focused())
}

func TestWindowResizeKeepsFocus(t *testing.T) {
	h := newHarness(t)
	h.load(t)
	h.send(t, keyMsg(tea.KeyRight))
	h.send(t, keyMsg(tea.KeyRight))

	h.send(t, tea.WindowSizeMsg{Width: 70, Height: 40})
	assert.Equal(t, 2, h.model.nav.Columns())
	assert.Equal(t, 2, h.model.nav.Focused())
}

func TestRevealOnLastRow(t *testing.T) {
	h := newHarness(t, numbered(20)...)
	h.load(t)
	require.Equal(t, 8, h.model.reveal.Revealed())

	h.send(t, keyMsg(tea.KeyDown))
	assert.Equal(t, 4, h.model.nav.Focused())
	assert.Equal(t, 13, h.model.reveal.Revealed())
	assert.Equal(t, 13, h.model.nav.Len())
	assert.Equal(t, "Showing 13 of 20", h.model.live.polite)
	assert.False(t, h.model.reveal.LoadingMore())
}

func TestSearchDebounceCommitsLastValue(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	h.send(t, runes("/"))
	require.Equal(t, FocusSearch, h.model.focus)

	// Type every key before any settle delay is delivered.
	var settles []tea.Msg
	for _, r := range "neg" {
		next, cmd := h.model.Update(runes(string(r)))
		h.model = next.(Model)
		settles = append(settles, drain(cmd)...)
	}
	require.Len(t, settles, 3)
	assert.Equal(t, "", h.session.Query())

	for _, msg := range settles {
		h.send(t, msg)
	}

	assert.Equal(t, "neg", h.session.Query())
	assert.Equal(t, []string{"Negroni"}, names(h.model.records))
	// One request for the initial listing and one for the settled query.
	assert.Equal(t, 2, h.server.Hits("search.php"))
}

func TestSearchEnterFlushes(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	h.send(t, runes("/"))
	h.model.search.SetValue("marg")
	h.model.text.Type("marg")
	h.send(t, keyMsg(tea.KeyEnter))

	assert.Equal(t, FocusGrid, h.model.focus)
	assert.Equal(t, "marg", h.session.Query())
	assert.Equal(t, []string{"Margarita"}, names(h.model.records))
}

func TestCycleClassification(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	h.send(t, runes("a"))
	assert.Equal(t, []string{"Mojito", "Margarita", "Negroni"}, names(h.model.records))
	assert.Equal(t, "3 cocktails", h.model.live.polite)

	h.send(t, runes("a"))
	assert.Equal(t, []string{"Virgin Mojito"}, names(h.model.records))

	h.send(t, runes("a"))
	assert.Len(t, h.model.records, 4)
	assert.True(t, h.session.Filter().IsEmpty())
}

func TestIngredientFilter(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	h.send(t, runes("i"))
	require.Equal(t, FocusIngredient, h.model.focus)
	h.model.ingredient.SetValue("mint, lime")
	h.send(t, keyMsg(tea.KeyEnter))

	assert.Equal(t, []string{"Mojito", "Virgin Mojito"}, names(h.model.records))

	h.send(t, runes("x"))
	assert.Len(t, h.model.records, 4)
}

func TestFailedOptionsDegradeOneControl(t *testing.T) {
	h := newHarness(t)
	h.server.Fail("list.php?g", http.StatusServiceUnavailable)
	h.load(t)
	assert.Equal(t, "Glass options unavailable", h.model.live.assertive)

	h.send(t, runes("g"))
	assert.True(t, h.session.Filter().IsEmpty())

	h.send(t, runes("c"))
	require.NotNil(t, h.session.Filter().Category)
	assert.Equal(t, "Cocktail", *h.session.Filter().Category)
}

func TestListingFailureShowsLocal(t *testing.T) {
	h := newHarness(t)
	_, err := h.session.Add(context.Background(), types.Cocktail{
		Name:        "Garden Gimlet",
		Ingredients: []types.Ingredient{{Name: "Gin"}},
	})
	require.NoError(t, err)
	h.server.Fail("search.php", http.StatusInternalServerError)
	h.load(t)

	assert.Equal(t, []string{"Garden Gimlet"}, names(h.model.records))
	assert.Equal(t, "Catalog unreachable; showing your collection only.", h.model.live.assertive)
	assert.NoError(t, h.model.listErr)
}

func TestListingFailureWithNothingLocalBlocks(t *testing.T) {
	h := newHarness(t)
	h.server.Fail("search.php", http.StatusInternalServerError)
	h.load(t)

	assert.Error(t, h.model.listErr)
	assert.Contains(t, h.model.View(), "C-r to retry")

	h.server.Fail("search.php", 0)
	h.send(t, keyMsg(tea.KeyCtrlR))
	assert.NoError(t, h.model.listErr)
	assert.Len(t, h.model.records, 4)
	assert.Empty(t, h.model.live.assertive)
}

func TestCancelledListingIsSilent(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	h.send(t, listingMsg{listing: browse.Listing{
		Result: merge.RemoteResult{Err: fmt.Errorf("query search:: %w", types.ErrCancelled)},
	}})

	assert.Empty(t, h.model.live.assertive)
	assert.Len(t, h.model.records, 4)
}

func TestEnterOpensDetail(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	h.send(t, keyMsg(tea.KeyEnter))
	require.Equal(t, FocusDetail, h.model.focus)
	require.NotNil(t, h.model.detail)
	assert.Equal(t, "Mojito", h.model.detail.Name)
	assert.Contains(t, h.model.View(), "Muddle mint with sugar and lime.")

	assert.Equal(t, 2, h.history.Len())
	assert.Equal(t, "11000", h.history.Query().Get(filterstate.KeyDrink))

	h.send(t, keyMsg(tea.KeyEsc))
	assert.Equal(t, FocusGrid, h.model.focus)
	assert.Equal(t, "Back to grid, 1 of 4", h.model.live.polite)
	assert.Equal(t, 1, h.history.Len())
	assert.False(t, h.history.Query().Has(filterstate.KeyDrink))
}

func TestSearchEscDropsPendingText(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	h.send(t, runes("/"))
	next, cmd := h.model.Update(runes("n"))
	h.model = next.(Model)
	settles := drain(cmd)
	require.NotEmpty(t, settles)

	h.send(t, keyMsg(tea.KeyEsc))
	for _, msg := range settles {
		h.send(t, msg)
	}

	assert.Equal(t, FocusGrid, h.model.focus)
	assert.Equal(t, "", h.session.Query())
	assert.Equal(t, "", h.model.search.Value())
	assert.Len(t, h.model.records, 4)
	assert.Equal(t, 1, h.server.Hits("search.php"))
}

func TestRefreshRefetchesCachedListing(t *testing.T) {
	h := newHarness(t)
	h.load(t)
	require.Equal(t, 1, h.server.Hits("search.php"))

	h.send(t, keyMsg(tea.KeyCtrlR))
	assert.Equal(t, 2, h.server.Hits("search.php"))
	assert.Len(t, h.model.records, 4)
}

func TestSpaceExpandsIngredients(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	h.send(t, space())
	assert.True(t, h.model.nav.Expanded(0))
	assert.Equal(t, 0, h.model.nav.Focused())
	assert.Equal(t, "Ingredients expanded", h.model.live.polite)
	assert.Contains(t, h.model.View(), "• 2-3 oz Light rum")
}

func TestSaveAndDelete(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	h.send(t, runes("s"))
	assert.Equal(t, "Saved Mojito to your collection", h.model.live.polite)
	require.Len(t, h.model.records, 5)
	saved := h.model.records[0]
	assert.Equal(t, types.OriginLocal, saved.Origin)

	// Local records lead the list; focus is still on index 0.
	h.send(t, runes("d"))
	assert.Equal(t, "Deleted Mojito", h.model.live.polite)
	assert.Len(t, h.model.records, 4)
	assert.Equal(t, types.OriginRemote, h.model.records[0].Origin)
}

func TestDeleteIgnoresRemote(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	h.send(t, runes("d"))
	assert.Len(t, h.model.records, 4)
}

func TestRandomOpensDetail(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	h.send(t, runes("r"))
	assert.Equal(t, FocusDetail, h.model.focus)
	assert.Equal(t, "Mojito", h.model.detail.Name)
}

func TestNextValue(t *testing.T) {
	values := []string{"A", "B"}
	assert.Equal(t, "A", *nextValue(values, nil))
	assert.Equal(t, "B", *nextValue(values, types.Ptr("a")))
	assert.Nil(t, nextValue(values, types.Ptr("B")))
	assert.Equal(t, "A", *nextValue(values, types.Ptr("zzz")))
	assert.Nil(t, nextValue(nil, nil))
}
