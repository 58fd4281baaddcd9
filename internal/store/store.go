// Package store caches transformed document HTML by document name, so a
// served document is only fetched and re-processed when its cache entry is
// missing or explicitly invalidated.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/docpress/docpress/internal/db"
)

// CachedDocument is one cached transform result.
type CachedDocument struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	HTML       string    `json:"html"`
	SourceHash string    `json:"source_hash"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Store persists processed documents.
type Store struct {
	db *db.DB
}

// New creates a store backed by the given database.
func New(d *db.DB) *Store {
	return &Store{db: d}
}

// Get returns the cached document by name, or nil when there is no entry.
func (s *Store) Get(ctx context.Context, name string) (*CachedDocument, error) {
	c := &CachedDocument{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, html, source_hash, updated_at
		 FROM processed_documents WHERE name = ?`, name,
	).Scan(&c.ID, &c.Name, &c.HTML, &c.SourceHash, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting cached document: %w", err)
	}
	return c, nil
}

// Put inserts or replaces the cached document for name.
func (s *Store) Put(ctx context.Context, name, html string) error {
	sum := sha256.Sum256([]byte(html))
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO processed_documents (id, name, html, source_hash, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET html=excluded.html, source_hash=excluded.source_hash, updated_at=excluded.updated_at`,
		uuid.NewString(), name, html, hex.EncodeToString(sum[:]), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("caching document %q: %w", name, err)
	}
	return nil
}

// Invalidate removes the cached document for name. Missing entries are not
// an error.
func (s *Store) Invalidate(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM processed_documents WHERE name = ?`, name); err != nil {
		return fmt.Errorf("invalidating document %q: %w", name, err)
	}
	return nil
}

// Names returns the names of all cached documents, sorted.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM processed_documents ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing cached documents: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning cached document name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
