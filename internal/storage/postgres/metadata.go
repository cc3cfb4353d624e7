package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MetadataStore keeps per-system metadata documents in the metadata_documents table,
// keyed by document name ("{gameSystem}.ocmd").
type MetadataStore struct {
	db *pgxpool.Pool
}

// NewMetadataStore creates a MetadataStore backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewMetadataStore(db *pgxpool.Pool) *MetadataStore {
	return &MetadataStore{db: db}
}

// Read returns the named document.
//
// Postcondition: Returns (nil, nil) when no row exists for name.
func (s *MetadataStore) Read(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(ctx,
		`SELECT data FROM metadata_documents WHERE name = $1`,
		name,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying metadata document %q: %w", name, err)
	}
	return data, nil
}

// Write inserts or replaces the named document.
//
// Postcondition: A subsequent Read of name returns data.
func (s *MetadataStore) Write(ctx context.Context, name string, data []byte) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO metadata_documents (name, data)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		name, data,
	)
	if err != nil {
		return fmt.Errorf("writing metadata document %q: %w", name, err)
	}
	return nil
}

// Names returns every stored document name, sorted.
func (s *MetadataStore) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT name FROM metadata_documents ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing metadata documents: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning metadata document names: %w", err)
	}
	return names, nil
}
