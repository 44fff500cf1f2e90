// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/mixology/internal/browse"
	"github.com/pdiddy/mixology/internal/filterstate"
	"github.com/pdiddy/mixology/pkg/types"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	switch {
	case m.focus == FocusDetail && m.detail != nil:
		sections = append(sections, m.renderDetail(*m.detail))
	case m.listErr != nil:
		sections = append(sections, m.styles.assertive.Render(browse.Message(m.listErr)),
			m.styles.muted.Render("Press C-r to retry."))
	case len(m.records) == 0 && m.searching:
		sections = append(sections, m.styles.muted.Render("Searching..."))
	case len(m.records) == 0:
		sections = append(sections, m.styles.muted.Render("No cocktails match."))
	default:
		sections = append(sections, m.renderGrid())
	}

	sections = append(sections, m.renderStatus(), m.renderHelp())
	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render("mixology"))
	b.WriteString("  ")
	switch m.focus {
	case FocusSearch:
		b.WriteString(m.search.View())
	case FocusIngredient:
		b.WriteString(m.ingredient.View())
	default:
		if q := m.session.Query(); q != "" {
			b.WriteString(m.styles.muted.Render("search: " + q))
		}
	}
	if filters := filterSummary(m.session.Filter()); filters != "" {
		b.WriteString("  ")
		b.WriteString(m.styles.muted.Render(filters))
	}
	return b.String()
}

func filterSummary(fs types.FilterSet) string {
	v := filterstate.Encode(fs)
	var parts []string
	for _, k := range []string{filterstate.KeyClassification, filterstate.KeyCategory, filterstate.KeyGlass, filterstate.KeyIngredient} {
		if s := v.Get(k); s != "" {
			parts = append(parts, k+"="+s)
		}
	}
	return strings.Join(parts, " ")
}

// renderGrid renders the revealed prefix as rows of cells, windowed so the
// focused row stays on screen.
func (m Model) renderGrid() string {
	visible := m.reveal.Visible()
	cols := m.nav.Columns()
	cellWidth := max(m.width/cols-4, 12)

	var rows []string
	focusedRow := 0
	for start := 0; start < len(visible); start += cols {
		end := min(start+cols, len(visible))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, m.renderCell(i, visible[i], cellWidth))
			if i == m.nav.Focused() {
				focusedRow = len(rows)
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	footer := ""
	switch {
	case m.reveal.LoadingMore():
		footer = m.styles.muted.Render("Loading more...")
	case m.reveal.HasMore():
		footer = m.styles.muted.Render(fmt.Sprintf("%d of %d shown; move to the last row for more", m.reveal.Revealed(), m.reveal.Len()))
	}

	return windowRows(rows, focusedRow, m.height-4, footer)
}

// windowRows joins rows, dropping leading rows until the focused row and
// everything above it fits in height lines.
func windowRows(rows []string, focused, height int, footer string) string {
	if footer != "" {
		height--
	}
	first := 0
	for first < focused {
		lines := 0
		for _, r := range rows[first : focused+1] {
			lines += lipgloss.Height(r)
		}
		if lines <= height {
			break
		}
		first++
	}
	out := strings.Join(rows[first:], "\n")
	if footer != "" {
		out += "\n" + footer
	}
	return out
}

func (m Model) renderCell(i int, c types.Cocktail, width int) string {
	style := m.styles.cell
	if i == m.nav.Focused() {
		style = m.styles.focused
	}

	var b strings.Builder
	b.WriteString(m.styles.name.Render(truncate(c.Name, width)))
	b.WriteString("\n")
	meta := fmt.Sprintf("%d ingredients", len(c.Ingredients))
	if c.Category != "" {
		meta += " · " + c.Category
	}
	b.WriteString(m.styles.muted.Render(truncate(meta, width)))
	if c.Origin == types.OriginLocal {
		b.WriteString("\n")
		b.WriteString(m.styles.local.Render("★ my collection"))
	}
	if m.nav.Expanded(i) {
		for _, ing := range c.Ingredients {
			b.WriteString("\n")
			b.WriteString(truncate(ingredientLine(ing), width))
		}
	}
	return style.Width(width).Render(b.String())
}

func (m Model) renderDetail(c types.Cocktail) string {
	var b strings.Builder
	b.WriteString(m.styles.name.Render(c.Name))
	if c.Origin == types.OriginLocal {
		b.WriteString("  " + m.styles.local.Render("★ my collection"))
	}
	b.WriteString("\n")

	var meta []string
	for _, s := range []string{c.Category, c.Glass, string(c.Classification)} {
		if s != "" {
			meta = append(meta, s)
		}
	}
	if len(meta) > 0 {
		b.WriteString(m.styles.muted.Render(strings.Join(meta, " · ")) + "\n")
	}
	if len(c.Tags) > 0 {
		b.WriteString(m.styles.muted.Render("tags: "+strings.Join(c.Tags, ", ")) + "\n")
	}

	b.WriteString("\nIngredients\n")
	for _, ing := range c.Ingredients {
		b.WriteString(ingredientLine(ing) + "\n")
	}
	if c.Instructions != "" {
		b.WriteString("\n" + c.Instructions + "\n")
	}
	if c.Image != "" {
		b.WriteString("\n" + m.styles.muted.Render(c.Image))
	}

	width := max(m.width-4, 20)
	return m.styles.detail.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func ingredientLine(ing types.Ingredient) string {
	if measure := ing.Measure(); measure != "" {
		return "• " + measure + " " + ing.Name
	}
	return "• " + ing.Name
}

// renderStatus shows the two announcement channels. The assertive one is
// highlighted and takes precedence.
func (m Model) renderStatus() string {
	if m.live.assertive != "" {
		return m.styles.assertive.Render(m.live.assertive)
	}
	return m.styles.muted.Render(m.live.polite)
}

func (m Model) renderHelp() string {
	var parts []string
	for _, b := range m.keys.helpBindings() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.styles.muted.Render(truncate(strings.Join(parts, "  "), max(m.width, 20)))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
