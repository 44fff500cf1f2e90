// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the browser's color palette.
type Theme struct {
	Accent    lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
	Local     lipgloss.Color
	Assertive lipgloss.Color
}

// DefaultTheme suits dark terminals.
var DefaultTheme = Theme{
	Accent:    lipgloss.Color("#7D56F4"),
	Muted:     lipgloss.Color("#737373"),
	Border:    lipgloss.Color("#3C3C3C"),
	Local:     lipgloss.Color("#4FB477"),
	Assertive: lipgloss.Color("#E05252"),
}

type styles struct {
	cell      lipgloss.Style
	focused   lipgloss.Style
	name      lipgloss.Style
	muted     lipgloss.Style
	local     lipgloss.Style
	header    lipgloss.Style
	assertive lipgloss.Style
	detail    lipgloss.Style
}

func newStyles(t Theme) styles {
	cell := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	return styles{
		cell:      cell,
		focused:   cell.BorderForeground(t.Accent),
		name:      lipgloss.NewStyle().Bold(true),
		muted:     lipgloss.NewStyle().Foreground(t.Muted),
		local:     lipgloss.NewStyle().Foreground(t.Local),
		header:    lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		assertive: lipgloss.NewStyle().Bold(true).Foreground(t.Assertive),
		detail:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Accent).Padding(1, 2),
	}
}
