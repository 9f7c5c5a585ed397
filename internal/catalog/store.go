// Package catalog reads the SQLite catalog index used to enrich lookups with
// descriptive fields and an access badge.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/nlitools/almagraph/internal/model"
)

// ErrSourceMissing reports that the catalog database file does not exist.
var ErrSourceMissing = errors.New("catalog index missing")

// ErrNotFound reports that an identifier has no catalog record.
var ErrNotFound = errors.New("record not found in catalog index")

// Store provides read-only access to the catalog index.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to the catalog index database. A missing file returns
// ErrSourceMissing so callers can apply the optional-source policy.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrSourceMissing)
		}
		return nil, fmt.Errorf("stat catalog index %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open catalog index: %w", err)
	}

	pragmas := []string{
		"PRAGMA query_only = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file backing the store.
func (s *Store) Path() string { return s.path }

// Lookup fetches the catalog record for a normalized identifier and derives
// its rights badge.
func (s *Store) Lookup(ctx context.Context, almaID string) (*model.CatalogRecord, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT alma_id,
               COALESCE(title, ''), COALESCE(title_remainder, ''),
               COALESCE(library, ''), COALESCE(shelfmark, ''),
               COALESCE(city, ''), COALESCE(country, ''),
               COALESCE(rights_note, ''), COALESCE(access_level, ''),
               COALESCE(terms_name, ''), COALESCE(terms_url, '')
        FROM catalog_index WHERE alma_id = ?`, almaID)

	rec := &model.CatalogRecord{}
	err := row.Scan(
		&rec.ALMA, &rec.Title, &rec.TitleRemainder,
		&rec.Library, &rec.Shelfmark,
		&rec.City, &rec.Country,
		&rec.RightsNote, &rec.AccessLevel,
		&rec.TermsName, &rec.TermsURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", almaID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query catalog index: %w", err)
	}

	rec.Rights = ClassifyRights(rec.RightsText())
	return rec, nil
}

// Count returns the number of records in the catalog index.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_index`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count catalog index: %w", err)
	}
	return n, nil
}
