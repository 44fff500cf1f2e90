// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog queries the read-only remote cocktail catalog (a
// TheCocktailDB-compatible JSON API) and returns canonical records.
//
// Every query goes through a per-key Cache. Listing and filter-option
// enumeration queries retry transient failures with exponential backoff;
// search-by-name, lookup and random queries do not retry. A null or
// missing drinks envelope normalizes to an empty list.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/mixology/internal/httputil"
	"github.com/pdiddy/mixology/internal/normalize"
	"github.com/pdiddy/mixology/pkg/types"
)

// Field names one filterable catalog dimension.
type Field string

const (
	FieldCategory       Field = "category"
	FieldGlass          Field = "glass"
	FieldIngredient     Field = "ingredient"
	FieldClassification Field = "classification"
)

// Fields lists the filterable dimensions in display order.
var Fields = []Field{FieldClassification, FieldCategory, FieldGlass, FieldIngredient}

// param is the single-letter query parameter the catalog uses for f.
func (f Field) param() string {
	switch f {
	case FieldCategory:
		return "c"
	case FieldGlass:
		return "g"
	case FieldIngredient:
		return "i"
	case FieldClassification:
		return "a"
	}
	return ""
}

// listKey is the JSON field carrying values in a list.php response.
func (f Field) listKey() string {
	switch f {
	case FieldCategory:
		return "strCategory"
	case FieldGlass:
		return "strGlass"
	case FieldIngredient:
		return "strIngredient1"
	case FieldClassification:
		return "strAlcoholic"
	}
	return ""
}

// Client queries the remote catalog.
type Client struct {
	http   *http.Client
	cfg    types.CatalogConfig
	cache  *Cache
	logger *zap.Logger
}

// NewClient returns a catalog client. A nil httpClient uses one with the
// configured timeout; a nil logger discards logs.
func NewClient(cfg types.CatalogConfig, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ListingStaleAfter <= 0 {
		cfg.ListingStaleAfter = 5 * time.Minute
	}
	if cfg.OptionsStaleAfter <= 0 {
		cfg.OptionsStaleAfter = time.Hour
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = httputil.DefaultMaxRetries
	}
	if cfg.APIKey == "" {
		cfg.APIKey = types.PublicAPIKey
	}
	return &Client{
		http:   httpClient,
		cfg:    cfg,
		cache:  NewCache(cfg.CacheSize),
		logger: logger,
	}
}

// Cache exposes the query cache so callers can cancel by key.
func (c *Client) Cache() *Cache { return c.cache }

// SearchKey is the cache key of a search-by-name query.
func SearchKey(name string) string { return "search:" + strings.ToLower(strings.TrimSpace(name)) }

// Search returns drinks whose name matches the catalog's name search. An
// empty name returns the catalog's default listing. Not retried.
func (c *Client) Search(ctx context.Context, name string) ([]types.Cocktail, error) {
	name = strings.TrimSpace(name)
	return cached(ctx, c.cache, SearchKey(name), c.cfg.ListingStaleAfter, func(ctx context.Context) ([]types.Cocktail, error) {
		return c.drinks(ctx, "search.php", url.Values{"s": {name}}, 0)
	})
}

// Lookup returns the drink with the given id, or found=false. Not retried.
func (c *Client) Lookup(ctx context.Context, id string) (types.Cocktail, bool, error) {
	drinks, err := cached(ctx, c.cache, "lookup:"+id, c.cfg.ListingStaleAfter, func(ctx context.Context) ([]types.Cocktail, error) {
		return c.drinks(ctx, "lookup.php", url.Values{"i": {id}}, 0)
	})
	if err != nil || len(drinks) == 0 {
		return types.Cocktail{}, false, err
	}
	return drinks[0], true, nil
}

// Random returns one random drink. It bypasses the cache: every call is a
// new pick.
func (c *Client) Random(ctx context.Context) (types.Cocktail, error) {
	drinks, err := c.drinks(ctx, "random.php", nil, 0)
	if err != nil {
		return types.Cocktail{}, err
	}
	if len(drinks) == 0 {
		return types.Cocktail{}, fmt.Errorf("random pick returned no drink: %w", types.ErrNetwork)
	}
	return drinks[0], nil
}

// Filter returns the drinks the catalog lists under field=value. The
// catalog returns partial records (id, name, image) for these queries.
// Retried.
func (c *Client) Filter(ctx context.Context, field Field, value string) ([]types.Cocktail, error) {
	if field.param() == "" {
		return nil, fmt.Errorf("unknown filter field %q", field)
	}
	key := "filter:" + string(field) + ":" + strings.ToLower(value)
	return cached(ctx, c.cache, key, c.cfg.ListingStaleAfter, func(ctx context.Context) ([]types.Cocktail, error) {
		return c.drinks(ctx, "filter.php", url.Values{field.param(): {value}}, c.cfg.MaxRetries)
	})
}

// Options returns the distinct values the catalog knows for field, in
// catalog order. Retried; cached for the options staleness window.
func (c *Client) Options(ctx context.Context, field Field) ([]string, error) {
	if field.param() == "" {
		return nil, fmt.Errorf("unknown filter field %q", field)
	}
	return cached(ctx, c.cache, "options:"+string(field), c.cfg.OptionsStaleAfter, func(ctx context.Context) ([]string, error) {
		var env types.OptionsEnvelope
		if err := c.get(ctx, "list.php", url.Values{field.param(): {"list"}}, c.cfg.MaxRetries, &env); err != nil {
			return nil, err
		}
		values := []string{}
		for _, row := range env.Drinks {
			if v := row[field.listKey()]; v != nil && strings.TrimSpace(*v) != "" {
				values = append(values, strings.TrimSpace(*v))
			}
		}
		return values, nil
	})
}

// OptionSet holds the enumerated values for each field. A field whose
// enumeration failed is absent from Values and present in Errors, so one
// failing control never blocks the others.
type OptionSet struct {
	Values map[Field][]string
	Errors map[Field]error
}

// AllOptions enumerates every field concurrently.
func (c *Client) AllOptions(ctx context.Context) OptionSet {
	results := make([][]string, len(Fields))
	errs := make([]error, len(Fields))

	var g errgroup.Group
	for i, f := range Fields {
		g.Go(func() error {
			results[i], errs[i] = c.Options(ctx, f)
			return nil
		})
	}
	g.Wait()

	set := OptionSet{Values: map[Field][]string{}, Errors: map[Field]error{}}
	for i, f := range Fields {
		if errs[i] != nil {
			if !types.IsCancelled(errs[i]) {
				c.logger.Warn("filter option enumeration failed", zap.String("field", string(f)), zap.Error(errs[i]))
			}
			set.Errors[f] = errs[i]
			continue
		}
		set.Values[f] = results[i]
	}
	return set
}

// drinks fetches a drinks envelope and normalizes it.
func (c *Client) drinks(ctx context.Context, endpoint string, params url.Values, retries int) ([]types.Cocktail, error) {
	var env rawEnvelope
	if err := c.get(ctx, endpoint, params, retries, &env); err != nil {
		return nil, err
	}
	return normalize.Drinks(env.drinks()), nil
}

// rawEnvelope tolerates the catalog answering {"drinks": null},
// {"drinks": "no data found"} or omitting the field.
type rawEnvelope struct {
	Drinks json.RawMessage `json:"drinks"`
}

func (e rawEnvelope) drinks() []types.RawDrink {
	if len(e.Drinks) == 0 || e.Drinks[0] != '[' {
		return nil
	}
	var out []types.RawDrink
	if err := json.Unmarshal(e.Drinks, &out); err != nil {
		return nil
	}
	return out
}

func (c *Client) endpointURL(endpoint string, params url.Values) string {
	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + url.PathEscape(c.cfg.APIKey) + "/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// get performs one catalog request and decodes the JSON body into out.
// Transport failures and non-200 statuses wrap ErrNetwork; a cancelled
// context wraps ErrCancelled.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, retries int, out any) error {
	reqURL := c.endpointURL(endpoint, params)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	start := time.Now()
	resp, err := httputil.DoWithRetry(ctx, c.http, req, retries)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("catalog %s: %w", endpoint, types.ErrCancelled)
		}
		return fmt.Errorf("catalog %s: %w: %v", endpoint, types.ErrNetwork, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("catalog request",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("catalog %s returned HTTP %d: %w", endpoint, resp.StatusCode, types.ErrNetwork)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("catalog %s: %w", endpoint, types.ErrCancelled)
		}
		return fmt.Errorf("reading catalog %s response: %w: %v", endpoint, types.ErrNetwork, err)
	}
	// The catalog answers some empty queries with an empty body.
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing catalog %s response: %w: %v", endpoint, types.ErrNetwork, err)
	}
	return nil
}

// SortedOptions returns a sorted copy of values, for display.
func SortedOptions(values []string) []string {
	out := slices.Clone(values)
	slices.SortFunc(out, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return out
}
