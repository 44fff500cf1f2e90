// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collection persists user-authored cocktails and the last active
// filter set in a local SQLite database. Records keep insertion order.
// Writes surface ErrStorage so callers can retry; reads that fail degrade
// to an empty set through Snapshot so a broken store never poisons a merge
// with partial data.
package collection

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/mixology/pkg/types"
)

const dbFile = "collection.db"

// activeFilterSlot is the filter_state row holding the persisted filter set.
const activeFilterSlot = "active"

// ErrNotFound is returned by Delete and Get for an unknown id.
var ErrNotFound = errors.New("cocktail not found")

// Store manages the local collection database.
type Store struct {
	db     *sql.DB
	logger *zap.Logger

	// now is the clock used to stamp DateModified; tests replace it.
	now func() time.Time
}

// NewStore opens or creates dataDir/collection.db and its schema.
func NewStore(cfg types.CollectionConfig, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dir := cfg.DataDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One writer; the browser is single-user.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, logger: logger, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS cocktails (
			position INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			instructions TEXT,
			image TEXT,
			ingredients TEXT NOT NULL,
			tags TEXT,
			category TEXT,
			glass TEXT,
			classification TEXT,
			date_modified TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS filter_state (
			slot TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// All returns every local record in insertion order.
func (s *Store) All(ctx context.Context) ([]types.Cocktail, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, instructions, image, ingredients, tags, category, glass,
			classification, date_modified
		FROM cocktails ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying cocktails: %w: %v", types.ErrStorage, err)
	}
	defer rows.Close()

	out := []types.Cocktail{}
	for rows.Next() {
		c, err := scanCocktail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cocktails: %w: %v", types.ErrStorage, err)
	}
	return out, nil
}

// Snapshot returns All, or an empty set when the read fails. The failure
// is logged, not returned.
func (s *Store) Snapshot(ctx context.Context) []types.Cocktail {
	all, err := s.All(ctx)
	if err != nil {
		s.logger.Warn("local collection unreadable, using empty set", zap.Error(err))
		return []types.Cocktail{}
	}
	return all
}

// Get returns the local record with id.
func (s *Store) Get(ctx context.Context, id string) (types.Cocktail, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, instructions, image, ingredients, tags, category, glass,
			classification, date_modified
		FROM cocktails WHERE id = ?`, id)
	c, err := scanCocktail(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Cocktail{}, fmt.Errorf("cocktail %s: %w", id, ErrNotFound)
	}
	return c, err
}

// Add validates c, assigns a fresh id, stamps DateModified and appends it
// to the collection. The stored record is returned.
func (s *Store) Add(ctx context.Context, c types.Cocktail) (types.Cocktail, error) {
	if err := c.Validate(); err != nil {
		return types.Cocktail{}, err
	}
	c.ID = uuid.NewString()
	c.Origin = types.OriginLocal
	c.DateModified = s.now().UTC()
	if c.Tags == nil {
		c.Tags = []string{}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Cocktail{}, fmt.Errorf("beginning transaction: %w: %v", types.ErrStorage, err)
	}
	defer tx.Rollback()

	if err := insertCocktail(ctx, tx, c); err != nil {
		return types.Cocktail{}, err
	}
	if err := tx.Commit(); err != nil {
		return types.Cocktail{}, fmt.Errorf("committing add: %w: %v", types.ErrStorage, err)
	}
	s.logger.Info("local cocktail added", zap.String("id", c.ID), zap.String("name", c.Name))
	return c, nil
}

// Delete removes the record with id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cocktails WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting cocktail %s: %w: %v", id, types.ErrStorage, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting cocktail %s: %w: %v", id, types.ErrStorage, err)
	}
	if n == 0 {
		return fmt.Errorf("cocktail %s: %w", id, ErrNotFound)
	}
	s.logger.Info("local cocktail deleted", zap.String("id", id))
	return nil
}

// ReplaceAll atomically replaces the whole collection with records, in
// order. Every record must validate. A record keeping an existing id never
// moves its DateModified backwards.
func (s *Store) ReplaceAll(ctx context.Context, records []types.Cocktail) error {
	for _, c := range records {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w: %v", types.ErrStorage, err)
	}
	defer tx.Rollback()

	previous := map[string]time.Time{}
	rows, err := tx.QueryContext(ctx, `SELECT id, date_modified FROM cocktails`)
	if err != nil {
		return fmt.Errorf("reading previous stamps: %w: %v", types.ErrStorage, err)
	}
	for rows.Next() {
		var id, stamp string
		if err := rows.Scan(&id, &stamp); err != nil {
			rows.Close()
			return fmt.Errorf("reading previous stamps: %w: %v", types.ErrStorage, err)
		}
		if t, err := time.Parse(time.RFC3339Nano, stamp); err == nil {
			previous[id] = t
		}
	}
	rows.Close()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cocktails`); err != nil {
		return fmt.Errorf("clearing cocktails: %w: %v", types.ErrStorage, err)
	}
	for _, c := range records {
		c.Origin = types.OriginLocal
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.DateModified.IsZero() {
			c.DateModified = s.now().UTC()
		}
		if prev, ok := previous[c.ID]; ok && c.DateModified.Before(prev) {
			c.DateModified = prev
		}
		if err := insertCocktail(ctx, tx, c); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing replace: %w: %v", types.ErrStorage, err)
	}
	return nil
}

// LoadFilter returns the persisted filter set. found is false when none
// has been saved.
func (s *Store) LoadFilter(ctx context.Context) (types.FilterSet, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM filter_state WHERE slot = ?`, activeFilterSlot).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return types.FilterSet{}, false, nil
	}
	if err != nil {
		return types.FilterSet{}, false, fmt.Errorf("reading filter state: %w: %v", types.ErrStorage, err)
	}
	var fs types.FilterSet
	if err := json.Unmarshal([]byte(value), &fs); err != nil {
		return types.FilterSet{}, false, fmt.Errorf("decoding filter state: %w: %v", types.ErrStorage, err)
	}
	return fs, true, nil
}

// SaveFilter persists fs, replacing any previous set.
func (s *Store) SaveFilter(ctx context.Context, fs types.FilterSet) error {
	data, err := json.Marshal(fs)
	if err != nil {
		return fmt.Errorf("encoding filter state: %w: %v", types.ErrStorage, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO filter_state (slot, value) VALUES (?, ?)
		 ON CONFLICT(slot) DO UPDATE SET value=excluded.value`,
		activeFilterSlot, string(data))
	if err != nil {
		return fmt.Errorf("writing filter state: %w: %v", types.ErrStorage, err)
	}
	return nil
}

// ClearFilter removes the persisted filter set.
func (s *Store) ClearFilter(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM filter_state WHERE slot = ?`, activeFilterSlot); err != nil {
		return fmt.Errorf("clearing filter state: %w: %v", types.ErrStorage, err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertCocktail(ctx context.Context, db execer, c types.Cocktail) error {
	ingredientsJSON, err := json.Marshal(c.Ingredients)
	if err != nil {
		return fmt.Errorf("encoding ingredients: %w: %v", types.ErrStorage, err)
	}
	tagsJSON, err := json.Marshal(c.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags: %w: %v", types.ErrStorage, err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO cocktails (id, name, instructions, image, ingredients, tags,
			category, glass, classification, date_modified)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Instructions, c.Image, string(ingredientsJSON), string(tagsJSON),
		c.Category, c.Glass, string(c.Classification), c.DateModified.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting cocktail %s: %w: %v", c.ID, types.ErrStorage, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCocktail(row scanner) (types.Cocktail, error) {
	var (
		c                                          types.Cocktail
		instructions, image, tags, category, glass sql.NullString
		classification                             sql.NullString
		ingredients, stamp                         string
	)
	err := row.Scan(&c.ID, &c.Name, &instructions, &image, &ingredients, &tags,
		&category, &glass, &classification, &stamp)
	if errors.Is(err, sql.ErrNoRows) {
		return c, err
	}
	if err != nil {
		return c, fmt.Errorf("scanning cocktail: %w: %v", types.ErrStorage, err)
	}

	c.Instructions = instructions.String
	c.Image = image.String
	c.Category = category.String
	c.Glass = glass.String
	c.Classification = types.Classification(classification.String)
	c.Origin = types.OriginLocal

	if err := json.Unmarshal([]byte(ingredients), &c.Ingredients); err != nil {
		return c, fmt.Errorf("decoding ingredients of %s: %w: %v", c.ID, types.ErrStorage, err)
	}
	c.Tags = []string{}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &c.Tags); err != nil {
			return c, fmt.Errorf("decoding tags of %s: %w: %v", c.ID, types.ErrStorage, err)
		}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if t, err := time.Parse(time.RFC3339Nano, stamp); err == nil {
		c.DateModified = t
	}
	return c, nil
}
