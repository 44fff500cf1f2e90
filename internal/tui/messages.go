// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdiddy/mixology/internal/browse"
	"github.com/pdiddy/mixology/internal/catalog"
	"github.com/pdiddy/mixology/internal/debounce"
	"github.com/pdiddy/mixology/internal/reveal"
	"github.com/pdiddy/mixology/pkg/types"
)

type listingMsg struct{ listing browse.Listing }

type optionsMsg struct{ options catalog.OptionSet }

// settleMsg fires when the search input has been idle for the debounce delay.
type settleMsg struct{ ticket debounce.Ticket }

// revealMsg fires when a reveal batch's settle delay has elapsed.
type revealMsg struct{ ticket reveal.Ticket }

type detailMsg struct {
	cocktail types.Cocktail
	err      error
}

// mutationMsg reports the outcome of a write to the local collection.
type mutationMsg struct {
	done string
	err  error
}

func fetchListing(ctx context.Context, s *browse.Session) tea.Cmd {
	return func() tea.Msg {
		return listingMsg{listing: s.FetchListing(ctx)}
	}
}

func refreshListing(ctx context.Context, s *browse.Session) tea.Cmd {
	return func() tea.Msg {
		return listingMsg{listing: s.Refresh(ctx)}
	}
}

func loadOptions(ctx context.Context, s *browse.Session) tea.Cmd {
	return func() tea.Msg {
		return optionsMsg{options: s.LoadOptions(ctx)}
	}
}

func scheduleSettle(d time.Duration, t debounce.Ticket) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return settleMsg{ticket: t} })
}

func scheduleReveal(d time.Duration, t reveal.Ticket) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return revealMsg{ticket: t} })
}

func fetchDetail(ctx context.Context, s *browse.Session, c types.Cocktail) tea.Cmd {
	return func() tea.Msg {
		full, err := s.Detail(ctx, c)
		return detailMsg{cocktail: full, err: err}
	}
}

func fetchRandom(ctx context.Context, s *browse.Session) tea.Cmd {
	return func() tea.Msg {
		c, err := s.Random(ctx)
		return detailMsg{cocktail: c, err: err}
	}
}

func saveCocktail(ctx context.Context, s *browse.Session, c types.Cocktail) tea.Cmd {
	return func() tea.Msg {
		added, err := s.Save(ctx, c)
		if err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{done: "Saved " + added.Name + " to your collection"}
	}
}

func deleteCocktail(ctx context.Context, s *browse.Session, c types.Cocktail) tea.Cmd {
	return func() tea.Msg {
		if err := s.Delete(ctx, c); err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{done: "Deleted " + c.Name}
	}
}
