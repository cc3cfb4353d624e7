package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrSheetNotFound is returned when a sheet lookup yields no results.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrEmptySheet is returned when asked to save a sheet with no snapshot data.
var ErrEmptySheet = errors.New("empty sheet data")

// SheetRecord is a stored character sheet snapshot.
type SheetRecord struct {
	ID         uuid.UUID
	Name       string
	GameSystem string
	// Data is the JSON snapshot.
	Data      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SheetRepository provides sheet persistence operations.
type SheetRepository struct {
	db *pgxpool.Pool
}

// NewSheetRepository creates a SheetRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewSheetRepository(db *pgxpool.Pool) *SheetRepository {
	return &SheetRepository{db: db}
}

// Save inserts rec or replaces the sheet with the same ID. A zero ID is assigned a new one.
//
// Precondition: rec.Data must be a non-empty JSON document.
// Postcondition: Returns the stored record with ID, CreatedAt, and UpdatedAt set.
func (r *SheetRepository) Save(ctx context.Context, rec SheetRecord) (SheetRecord, error) {
	if len(rec.Data) == 0 {
		return SheetRecord{}, ErrEmptySheet
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO sheets (id, name, game_system, data)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		   SET name = EXCLUDED.name,
		       game_system = EXCLUDED.game_system,
		       data = EXCLUDED.data,
		       updated_at = NOW()
		RETURNING created_at, updated_at`,
		rec.ID, rec.Name, rec.GameSystem, rec.Data,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return SheetRecord{}, fmt.Errorf("saving sheet: %w", err)
	}
	return rec, nil
}

// Get retrieves a sheet by ID.
//
// Postcondition: Returns the record or ErrSheetNotFound.
func (r *SheetRepository) Get(ctx context.Context, id uuid.UUID) (SheetRecord, error) {
	var rec SheetRecord
	err := r.db.QueryRow(ctx, `
		SELECT id, name, game_system, data, created_at, updated_at
		FROM sheets WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.Name, &rec.GameSystem, &rec.Data, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SheetRecord{}, ErrSheetNotFound
		}
		return SheetRecord{}, fmt.Errorf("querying sheet: %w", err)
	}
	return rec, nil
}

// List returns every stored sheet without its snapshot data, ordered by name.
func (r *SheetRepository) List(ctx context.Context) ([]SheetRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, game_system, created_at, updated_at
		FROM sheets ORDER BY name, created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing sheets: %w", err)
	}
	defer rows.Close()

	var out []SheetRecord
	for rows.Next() {
		var rec SheetRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.GameSystem, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning sheet: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sheets: %w", err)
	}
	return out, nil
}

// Delete removes a sheet.
//
// Postcondition: Returns ErrSheetNotFound if no row was deleted.
func (r *SheetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sheets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting sheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSheetNotFound
	}
	return nil
}
