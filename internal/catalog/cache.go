// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pdiddy/mixology/pkg/types"
)

// Cache holds query results per key with a staleness window. A fresh entry
// is served without a fetch; a stale one is revalidated on next access,
// never by a background timer. Issuing a fetch for a key supersedes any
// fetch still in flight for the same key: the earlier caller gets
// ErrCancelled regardless of which request finishes first.
type Cache struct {
	mu      sync.Mutex
	entries *lru.Cache[string, *cacheEntry]

	// inflight pins entries with a running fetch so LRU eviction cannot
	// reset their generation.
	inflight map[string]*cacheEntry

	// now is the clock; tests replace it.
	now func() time.Time
}

type cacheEntry struct {
	value     any
	fetchedAt time.Time
	hasValue  bool

	// gen identifies the most recently issued fetch for this key.
	gen    uint64
	cancel context.CancelFunc
}

// NewCache returns a cache bounded to size keys.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = 128
	}
	entries, err := lru.New[string, *cacheEntry](size)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(fmt.Sprintf("catalog: creating cache: %v", err))
	}
	return &Cache{entries: entries, inflight: map[string]*cacheEntry{}, now: time.Now}
}

// lookup returns the entry for key, preferring a pinned in-flight entry.
// Callers hold mu.
func (c *Cache) lookup(key string) (*cacheEntry, bool) {
	if e, ok := c.inflight[key]; ok {
		return e, true
	}
	return c.entries.Peek(key)
}

// Cancel aborts the in-flight fetch for key, if any. Its caller receives
// ErrCancelled.
func (c *Cache) Cancel(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.lookup(key); ok && e.cancel != nil {
		e.cancel()
		e.cancel = nil
		e.gen++
		delete(c.inflight, key)
	}
}

// Invalidate drops any cached value for key so the next access fetches.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.lookup(key); ok {
		e.hasValue = false
		e.value = nil
	}
}

// Len returns the number of keys held.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// cached returns the value for key, fetching it when missing or older than
// staleAfter. Failed fetches are not cached.
func cached[T any](ctx context.Context, c *Cache, key string, staleAfter time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	c.mu.Lock()
	e, ok := c.lookup(key)
	if !ok {
		e = &cacheEntry{}
	}
	c.entries.Add(key, e)
	if e.hasValue && c.now().Sub(e.fetchedAt) < staleAfter {
		v := e.value.(T)
		c.mu.Unlock()
		return v, nil
	}
	if e.cancel != nil {
		e.cancel()
	}
	e.gen++
	gen := e.gen
	fetchCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	c.inflight[key] = e
	c.mu.Unlock()

	v, err := fetch(fetchCtx)

	c.mu.Lock()
	defer c.mu.Unlock()
	superseded := e.gen != gen
	if !superseded {
		e.cancel = nil
		delete(c.inflight, key)
	}
	cancel()

	if superseded {
		return zero, fmt.Errorf("query %s superseded: %w", key, types.ErrCancelled)
	}
	if err != nil {
		if types.IsCancelled(err) || errors.Is(fetchCtx.Err(), context.Canceled) {
			return zero, fmt.Errorf("query %s: %w", key, types.ErrCancelled)
		}
		return zero, err
	}
	e.value = v
	e.fetchedAt = c.now()
	e.hasValue = true
	c.entries.Add(key, e)
	return v, nil
}
