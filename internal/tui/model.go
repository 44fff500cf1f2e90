// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is the terminal cocktail browser. It renders the merged
// listing as a grid and wires the headless navigator, reveal controller
// and debounced search input to bubbletea messages: settle delays arrive
// as tea.Tick messages and remote work runs in tea.Cmd goroutines.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/pdiddy/mixology/internal/browse"
	"github.com/pdiddy/mixology/internal/catalog"
	"github.com/pdiddy/mixology/internal/debounce"
	"github.com/pdiddy/mixology/internal/grid"
	"github.com/pdiddy/mixology/internal/reveal"
	"github.com/pdiddy/mixology/pkg/types"
)

// Focus is the region receiving key input.
type Focus int

const (
	FocusGrid Focus = iota
	FocusSearch
	FocusIngredient
	FocusDetail
)

// Model is the bubbletea model for the browser.
type Model struct {
	ctx     context.Context
	session *browse.Session
	logger  *zap.Logger
	keys    KeyMap
	styles  styles

	nav    *grid.Navigator
	reveal *reveal.Controller
	text   *debounce.Input

	search     textinput.Model
	ingredient textinput.Model

	focus  Focus
	detail *types.Cocktail

	records   []types.Cocktail
	searching bool

	// listErr is set when the listing failed and nothing local matched.
	listErr error

	live *liveRegion

	width  int
	height int
}

// New returns a browser over a started session.
func New(ctx context.Context, session *browse.Session, cfg types.BrowseConfig, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search by name"
	search.SetValue(session.Query())

	ingredient := textinput.New()
	ingredient.Prompt = "ingredient: "
	ingredient.Placeholder = "comma separated"

	text := debounce.New(cfg.Debounce)
	text.Reset(session.Query())

	m := Model{
		ctx:        ctx,
		live:       &liveRegion{},
		session:    session,
		logger:     logger,
		keys:       DefaultKeyMap,
		styles:     newStyles(DefaultTheme),
		nav:        grid.New(1),
		reveal:     reveal.New(cfg),
		text:       text,
		search:     search,
		ingredient: ingredient,
		searching:  true,
	}
	grid.Announce(m.nav, m.live)
	m.rebuild()
	return m
}

// Init starts the first listing query and the filter option enumeration.
func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchListing(m.ctx, m.session), loadOptions(m.ctx, m.session))
}

// liveRegion holds the two announcement channels. It is shared by pointer
// so the navigator's index-change callback survives Model copies.
// Assertive messages stay until the next assertive message or a
// successful listing replaces them.
type liveRegion struct {
	polite    string
	assertive string
}

// Announce implements grid.Announcer.
func (r *liveRegion) Announce(p grid.Priority, message string) {
	if p == grid.Assertive {
		r.assertive = message
		return
	}
	r.polite = message
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.nav.SetColumns(grid.ColumnsForWidth(msg.Width))
		m.search.Width = max(msg.Width-4, 10)
		return m, nil

	case listingMsg:
		return m.handleListing(msg.listing)

	case optionsMsg:
		for _, f := range catalog.Fields {
			if err := msg.options.Errors[f]; err != nil && !types.IsCancelled(err) {
				m.live.Announce(grid.Assertive, fmt.Sprintf("%s options unavailable", fieldLabel(f)))
			}
		}
		return m, nil

	case settleMsg:
		if value, changed := m.text.Expire(msg.ticket); changed {
			return m, m.commitQuery(value)
		}
		return m, nil

	case revealMsg:
		if n := m.reveal.Settle(msg.ticket); n > 0 {
			m.nav.SetItems(m.reveal.Visible())
			m.live.Announce(grid.Polite, fmt.Sprintf("Showing %d of %d", m.reveal.Revealed(), m.reveal.Len()))
		}
		return m, nil

	case detailMsg:
		if msg.err != nil {
			m.report(msg.err)
			return m, nil
		}
		c := msg.cocktail
		if m.detail == nil {
			m.session.OpenDetail(c.ID)
		}
		m.detail = &c
		m.focus = FocusDetail
		m.live.Announce(grid.Polite, fmt.Sprintf("%s, %d ingredients", c.Name, len(c.Ingredients)))
		return m, nil

	case mutationMsg:
		if msg.err != nil {
			m.report(msg.err)
			return m, nil
		}
		m.live.Announce(grid.Polite, msg.done)
		if m.focus == FocusDetail {
			m.closeDetail()
		}
		m.rebuild()
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch m.focus {
	case FocusSearch:
		return m.handleSearchKey(msg)
	case FocusIngredient:
		return m.handleIngredientKey(msg)
	case FocusDetail:
		return m.handleDetailKey(msg)
	}
	return m.handleGridKey(msg)
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.focus = FocusSearch
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Ingredient):
		m.focus = FocusIngredient
		if fs := m.session.Filter(); fs.Ingredient != nil {
			m.ingredient.SetValue(*fs.Ingredient)
		}
		return m, m.ingredient.Focus()
	case key.Matches(msg, m.keys.CycleClassification):
		return m, m.cycleFilter(catalog.FieldClassification)
	case key.Matches(msg, m.keys.CycleCategory):
		return m, m.cycleFilter(catalog.FieldCategory)
	case key.Matches(msg, m.keys.CycleGlass):
		return m, m.cycleFilter(catalog.FieldGlass)
	case key.Matches(msg, m.keys.ClearFilters):
		m.setFilter(types.FilterSet{})
		return m, nil
	case key.Matches(msg, m.keys.Random):
		return m, fetchRandom(m.ctx, m.session)
	case key.Matches(msg, m.keys.Refresh):
		m.searching = true
		return m, refreshListing(m.ctx, m.session)
	case key.Matches(msg, m.keys.Save):
		if c, ok := m.focused(); ok && !c.Mutable() {
			return m, saveCocktail(m.ctx, m.session, c)
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if c, ok := m.focused(); ok && c.Mutable() {
			return m, deleteCocktail(m.ctx, m.session, c)
		}
		return m, nil
	}

	res := m.nav.Handle(grid.Event{Key: gridKey(m.keys, msg), OnCell: true})
	if res.Moved {
		return m, m.maybeReveal()
	}
	if res.Activated {
		return m, fetchDetail(m.ctx, m.session, *res.Item)
	}
	if res.Toggled {
		state := "collapsed"
		if res.Expanded {
			state = "expanded"
		}
		m.live.Announce(grid.Polite, fmt.Sprintf("Ingredients %s", state))
	}
	return m, nil
}

// gridKey maps a key press onto navigator input.
func gridKey(k KeyMap, msg tea.KeyMsg) grid.Key {
	switch {
	case key.Matches(msg, k.Up):
		return grid.KeyUp
	case key.Matches(msg, k.Down):
		return grid.KeyDown
	case key.Matches(msg, k.Left):
		return grid.KeyLeft
	case key.Matches(msg, k.Right):
		return grid.KeyRight
	case key.Matches(msg, k.Open):
		return grid.KeyEnter
	case key.Matches(msg, k.Expand):
		return grid.KeySpace
	}
	return grid.KeyNone
}

// maybeReveal fires a visibility trigger when focus sits on the last
// revealed row.
func (m *Model) maybeReveal() tea.Cmd {
	i := m.nav.Focused()
	if i == grid.NoFocus || m.nav.Cell(i).RowIndex < m.nav.Rows() {
		return nil
	}
	t, ok := m.reveal.Trigger()
	if !ok {
		return nil
	}
	m.live.Announce(grid.Polite, "Loading more")
	return scheduleReveal(m.reveal.SettleDelay(), t)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.leaveInput()
		if value, changed := m.text.Flush(); changed {
			return m, m.commitQuery(value)
		}
		return m, nil
	case tea.KeyEsc:
		m.text.Cancel()
		m.search.SetValue(m.text.Value())
		m.leaveInput()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	t := m.text.Type(m.search.Value())
	return m, tea.Batch(cmd, scheduleSettle(m.text.Delay(), t))
}

func (m Model) handleIngredientKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		fs := m.session.Filter()
		fs.Ingredient = nil
		if v := strings.TrimSpace(m.ingredient.Value()); v != "" {
			fs.Ingredient = types.Ptr(v)
		}
		m.leaveInput()
		m.setFilter(fs)
		return m, nil
	case tea.KeyEsc:
		m.leaveInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.ingredient, cmd = m.ingredient.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.closeDetail()
		if i := m.nav.Focused(); i != grid.NoFocus {
			m.live.Announce(grid.Polite, fmt.Sprintf("Back to grid, %d of %d", i+1, m.nav.Len()))
		}
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Save):
		if m.detail != nil && !m.detail.Mutable() {
			return m, saveCocktail(m.ctx, m.session, *m.detail)
		}
	case key.Matches(msg, m.keys.Delete):
		if m.detail != nil && m.detail.Mutable() {
			return m, deleteCocktail(m.ctx, m.session, *m.detail)
		}
	}
	return m, nil
}

func (m *Model) closeDetail() {
	m.focus = FocusGrid
	m.detail = nil
	m.session.CloseDetail()
}

// leaveInput returns focus from a text input to the grid, which focuses
// its first item if nothing was focused yet.
func (m *Model) leaveInput() {
	m.search.Blur()
	m.ingredient.Blur()
	m.focus = FocusGrid
	m.nav.Focus()
}

// commitQuery makes value the session query and fetches its listing.
func (m *Model) commitQuery(value string) tea.Cmd {
	if !m.session.Commit(value) {
		return nil
	}
	m.searching = true
	m.rebuild()
	return fetchListing(m.ctx, m.session)
}

func (m Model) handleListing(l browse.Listing) (tea.Model, tea.Cmd) {
	if !m.session.Apply(l) {
		return m, nil
	}
	m.searching = false
	m.live.assertive = ""
	m.rebuild()
	return m, nil
}

// setFilter makes fs active and re-merges. A persistence failure is
// announced but the filter still applies.
func (m *Model) setFilter(fs types.FilterSet) {
	if err := m.session.SetFilter(m.ctx, fs); err != nil {
		m.report(err)
	}
	m.rebuild()
	m.live.Announce(grid.Polite, fmt.Sprintf("%d cocktails", len(m.records)))
}

// cycleFilter advances field to its next enumerated value, wrapping
// through unset.
func (m *Model) cycleFilter(field catalog.Field) tea.Cmd {
	opts := m.session.Options()
	if err := opts.Errors[field]; err != nil {
		m.live.Announce(grid.Assertive, fmt.Sprintf("%s options unavailable", fieldLabel(field)))
		return nil
	}
	values, ok := opts.Values[field]
	if !ok {
		m.live.Announce(grid.Polite, fmt.Sprintf("%s options loading", fieldLabel(field)))
		return loadOptions(m.ctx, m.session)
	}
	values = catalog.SortedOptions(values)

	fs := m.session.Filter()
	slot := filterSlot(&fs, field)
	*slot = nextValue(values, *slot)
	m.setFilter(fs)
	return nil
}

func filterSlot(fs *types.FilterSet, field catalog.Field) **string {
	switch field {
	case catalog.FieldCategory:
		return &fs.Category
	case catalog.FieldGlass:
		return &fs.Glass
	case catalog.FieldIngredient:
		return &fs.Ingredient
	}
	return &fs.Classification
}

// nextValue returns the value after cur, nil after the last one, and the
// first value when cur is unset or unknown.
func nextValue(values []string, cur *string) *string {
	if len(values) == 0 {
		return nil
	}
	if cur == nil {
		return types.Ptr(values[0])
	}
	for i, v := range values {
		if strings.EqualFold(v, *cur) {
			if i+1 < len(values) {
				return types.Ptr(values[i+1])
			}
			return nil
		}
	}
	return types.Ptr(values[0])
}

func fieldLabel(f catalog.Field) string {
	switch f {
	case catalog.FieldClassification:
		return "Alcoholic"
	case catalog.FieldCategory:
		return "Category"
	case catalog.FieldGlass:
		return "Glass"
	}
	return "Ingredient"
}

// rebuild re-merges the session state and feeds the reveal controller and
// navigator.
func (m *Model) rebuild() {
	out := m.session.Merged()
	m.records = out.Records

	m.listErr = nil
	if out.RemoteErr != nil {
		if len(out.Records) == 0 {
			m.listErr = out.RemoteErr
		} else {
			m.live.Announce(grid.Assertive, browse.Message(out.RemoteErr))
		}
	}

	if m.reveal.SetSource(out.Records) {
		m.logger.Debug("listing reset", zap.Int("records", len(out.Records)), zap.Int("shadowed", out.Shadowed))
	}
	m.nav.SetItems(m.reveal.Visible())
	if m.focus == FocusGrid {
		m.nav.Focus()
	}
}

// report announces err on the assertive channel. Cancellation is silent.
func (m *Model) report(err error) {
	if browse.Classify(err) == browse.KindCancelled {
		return
	}
	m.logger.Warn("browser action failed", zap.Error(err))
	m.live.Announce(grid.Assertive, browse.Message(err))
}

func (m Model) focused() (types.Cocktail, bool) {
	i := m.nav.Focused()
	visible := m.reveal.Visible()
	if i == grid.NoFocus || i >= len(visible) {
		return types.Cocktail{}, false
	}
	return visible[i], true
}
