// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package browse orchestrates one browsing session. A Session owns the
// catalog client, the local collection, the filter state codec and the
// merge state; front ends (the terminal browser, the CLI) drive it and
// render what it returns.
package browse

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/mixology/internal/catalog"
	"github.com/pdiddy/mixology/internal/collection"
	"github.com/pdiddy/mixology/internal/filterstate"
	"github.com/pdiddy/mixology/internal/merge"
	"github.com/pdiddy/mixology/pkg/types"
)

// Listing is the outcome of one primary listing fetch.
type Listing struct {
	// Query is the committed text the fetch was issued for.
	Query  string
	Result merge.RemoteResult
}

// Session is safe for use from the goroutines that run front-end commands.
type Session struct {
	client *catalog.Client
	store  *collection.Store
	codec  *filterstate.Codec
	logger *zap.Logger

	mu      sync.Mutex
	query   string
	issued  string
	remote  merge.RemoteResult
	local   []types.Cocktail
	options catalog.OptionSet
}

// New returns a session over the given location. A nil logger discards logs.
func New(client *catalog.Client, store *collection.Store, loc filterstate.Location, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	codec := filterstate.NewCodec(loc, store, logger)
	return &Session{
		client: client,
		store:  store,
		codec:  codec,
		logger: logger,
		query:  strings.TrimSpace(codec.Text()),
	}
}

// Start restores persisted filter state into the location and loads the
// local snapshot.
func (s *Session) Start(ctx context.Context) (types.FilterSet, bool) {
	fs, restored := s.codec.Restore(ctx)
	if !restored {
		fs = s.codec.Current()
	}
	s.RefreshLocal(ctx)
	if restored {
		s.logger.Info("restored saved filters", zap.Any("filter", filterstate.Encode(fs)))
	}
	return fs, restored
}

// Query returns the committed text query.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Filter returns the active filter set.
func (s *Session) Filter() types.FilterSet {
	return s.codec.Current()
}

// Commit makes text the committed query. Any listing still in flight for
// the previous query is cancelled. It reports whether the query changed.
func (s *Session) Commit(text string) bool {
	text = strings.TrimSpace(text)
	s.mu.Lock()
	if text == s.query {
		s.mu.Unlock()
		return false
	}
	prev := s.issued
	s.query = text
	s.mu.Unlock()

	if prev != "" && prev != catalog.SearchKey(text) {
		s.client.Cache().Cancel(prev)
	}
	s.codec.SetText(text)
	return true
}

// OpenDetail records that the detail view of id is showing, as a new
// navigation entry.
func (s *Session) OpenDetail(id string) {
	s.codec.OpenDetail(id)
}

// CloseDetail returns to the entry below the detail view.
func (s *Session) CloseDetail() {
	s.codec.CloseDetail()
}

// SetFilter makes fs the active filter set. The location always changes;
// a persistence failure is returned for the caller to surface.
func (s *Session) SetFilter(ctx context.Context, fs types.FilterSet) error {
	if err := s.codec.Update(ctx, fs); err != nil {
		s.logger.Warn("saving filter state failed", zap.Error(err))
		return fmt.Errorf("saving filters: %w", err)
	}
	return nil
}

// FetchListing runs the primary listing query for the committed text. It
// does not change session state; pass the result to Apply.
func (s *Session) FetchListing(ctx context.Context) Listing {
	s.mu.Lock()
	query := s.query
	s.issued = catalog.SearchKey(query)
	s.mu.Unlock()

	records, err := s.client.Search(ctx, query)
	if err != nil && !types.IsCancelled(err) {
		s.logger.Warn("listing query failed", zap.String("query", query), zap.Error(err))
	}
	return Listing{Query: query, Result: merge.RemoteResult{Records: records, Err: err}}
}

// Refresh drops the cached listing for the committed text and fetches it
// again.
func (s *Session) Refresh(ctx context.Context) Listing {
	s.client.Cache().Invalidate(catalog.SearchKey(s.Query()))
	return s.FetchListing(ctx)
}

// Apply stores a listing result. Results for a query that is no longer
// committed, and cancelled results, are dropped; Apply reports whether the
// result was taken.
func (s *Session) Apply(l Listing) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.Query != s.query || types.IsCancelled(l.Result.Err) {
		return false
	}
	s.remote = l.Result
	return true
}

// RefreshLocal reloads the local snapshot. A failed read yields an empty
// snapshot.
func (s *Session) RefreshLocal(ctx context.Context) []types.Cocktail {
	local := s.store.Snapshot(ctx)
	s.mu.Lock()
	s.local = local
	s.mu.Unlock()
	return local
}

// Merged runs the merge engine over the current state.
func (s *Session) Merged() merge.Output {
	fs := s.codec.Current()
	s.mu.Lock()
	st := merge.State{
		Remote: s.remote,
		Local:  s.local,
		Filter: fs,
		Query:  s.query,
	}
	s.mu.Unlock()
	return merge.Merge(st)
}

// LoadOptions enumerates every filter control's values. Each control
// degrades on its own.
func (s *Session) LoadOptions(ctx context.Context) catalog.OptionSet {
	set := s.client.AllOptions(ctx)
	s.mu.Lock()
	s.options = set
	s.mu.Unlock()
	return set
}

// Options returns the last enumerated option set.
func (s *Session) Options() catalog.OptionSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.options
}

// Detail returns the full record for c. Remote records from the listing
// may be partial, so they are looked up by id; local records are read
// from the store.
func (s *Session) Detail(ctx context.Context, c types.Cocktail) (types.Cocktail, error) {
	if c.Origin == types.OriginLocal {
		return s.store.Get(ctx, c.ID)
	}
	full, found, err := s.client.Lookup(ctx, c.ID)
	if err != nil {
		return c, err
	}
	if !found {
		return c, nil
	}
	return full, nil
}

// Random returns one random catalog drink.
func (s *Session) Random(ctx context.Context) (types.Cocktail, error) {
	return s.client.Random(ctx)
}

// Add stores a new local record and refreshes the snapshot.
func (s *Session) Add(ctx context.Context, c types.Cocktail) (types.Cocktail, error) {
	added, err := s.store.Add(ctx, c)
	if err != nil {
		return types.Cocktail{}, err
	}
	s.RefreshLocal(ctx)
	s.logger.Info("added local cocktail", zap.String("id", added.ID), zap.String("name", added.Name))
	return added, nil
}

// Save copies a remote record into the local collection.
func (s *Session) Save(ctx context.Context, c types.Cocktail) (types.Cocktail, error) {
	if c.Origin == types.OriginLocal {
		return c, fmt.Errorf("%w: %q is already local", types.ErrValidation, c.Name)
	}
	full, err := s.Detail(ctx, c)
	if err != nil {
		return types.Cocktail{}, err
	}
	return s.Add(ctx, full)
}

// Delete removes a local record and refreshes the snapshot. Remote
// records are immutable.
func (s *Session) Delete(ctx context.Context, c types.Cocktail) error {
	if !c.Mutable() {
		return fmt.Errorf("%w: %q comes from the catalog and cannot be deleted", types.ErrValidation, c.Name)
	}
	if err := s.store.Delete(ctx, c.ID); err != nil {
		return err
	}
	s.RefreshLocal(ctx)
	s.logger.Info("deleted local cocktail", zap.String("id", c.ID))
	return nil
}
