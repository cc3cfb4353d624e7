package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/ocsm/internal/sheet"
	"github.com/cory-johannsen/ocsm/internal/storage/filestore"
	"github.com/cory-johannsen/ocsm/internal/storage/postgres"
)

// sheetStore persists sheet documents for the configured backend. A ref is a file name for
// the file backend and a sheet UUID for postgres.
type sheetStore interface {
	// Save writes the session's snapshot under ref and returns the ref it can be loaded from.
	Save(ctx context.Context, ref string, s *sheet.Session) (string, error)
	Load(ctx context.Context, ref string) ([]byte, error)
}

func marshalSession(s *sheet.Session) ([]byte, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Marshal()
}

type fileSheets struct {
	store *filestore.SheetStore
}

func (f *fileSheets) Save(ctx context.Context, ref string, s *sheet.Session) (string, error) {
	data, err := marshalSession(s)
	if err != nil {
		return "", err
	}
	return f.store.Save(ctx, ref, data)
}

func (f *fileSheets) Load(ctx context.Context, ref string) ([]byte, error) {
	return f.store.Load(ctx, ref)
}

type postgresSheets struct {
	repo *postgres.SheetRepository
}

func (p *postgresSheets) Save(ctx context.Context, ref string, s *sheet.Session) (string, error) {
	data, err := marshalSession(s)
	if err != nil {
		return "", err
	}
	id := uuid.Nil
	if ref != "" {
		if id, err = uuid.Parse(ref); err != nil {
			return "", fmt.Errorf("sheet id %q: %w", ref, err)
		}
	}
	rec, err := p.repo.Save(ctx, postgres.SheetRecord{
		ID:         id,
		Name:       s.DisplayName(),
		GameSystem: string(s.System()),
		Data:       data,
	})
	if err != nil {
		return "", err
	}
	return rec.ID.String(), nil
}

func (p *postgresSheets) Load(ctx context.Context, ref string) ([]byte, error) {
	id, err := uuid.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("sheet id %q: %w", ref, err)
	}
	rec, err := p.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec.Data, nil
}
