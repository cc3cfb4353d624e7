// Package filestore keeps metadata documents and character sheets as files on disk.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File naming for character sheets.
const (
	SheetExtension   = ".ocs"
	NewSheetFileName = "NewSheet"
	dirPerm          = 0o755
	filePerm         = 0o644
)

// ErrEmptySheet is returned when asked to save a sheet with no content.
var ErrEmptySheet = errors.New("filestore: empty sheet data")

// writeFile replaces path atomically via a temporary file in the same directory.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), filePerm); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}

// MetadataStore reads and writes "{gameSystem}.ocmd" documents in Dir.
type MetadataStore struct {
	Dir string
}

// NewMetadataStore returns a store rooted at dir.
func NewMetadataStore(dir string) *MetadataStore {
	return &MetadataStore{Dir: dir}
}

// Read returns the named document.
//
// Postcondition: Returns (nil, nil) when the file does not exist.
func (s *MetadataStore) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, filepath.Base(name)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// Write replaces the named document, creating Dir if necessary.
func (s *MetadataStore) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeFile(filepath.Join(s.Dir, filepath.Base(name)), data)
}

// SheetStore reads and writes character sheet files. Relative names resolve against Dir.
type SheetStore struct {
	Dir string
}

// NewSheetStore returns a store rooted at dir.
func NewSheetStore(dir string) *SheetStore {
	return &SheetStore{Dir: dir}
}

// Resolve maps a user-supplied name to a sheet file path.
//
// A directory (an existing one, or a name ending in a separator) or a bare ".ocs" resolves to
// NewSheet.ocs inside it; a name without the ".ocs" extension gets it appended.
func (s *SheetStore) Resolve(name string) string {
	p := name
	if !filepath.IsAbs(p) {
		p = filepath.Join(s.Dir, p)
	}
	base := filepath.Base(name)
	switch {
	case name == "" || strings.HasSuffix(name, string(filepath.Separator)) || strings.HasSuffix(name, "/"):
		return filepath.Join(p, NewSheetFileName+SheetExtension)
	case base == SheetExtension:
		return filepath.Join(filepath.Dir(p), NewSheetFileName+SheetExtension)
	}
	if info, err := os.Stat(p); err == nil && info.IsDir() {
		return filepath.Join(p, NewSheetFileName+SheetExtension)
	}
	if filepath.Ext(p) != SheetExtension {
		p += SheetExtension
	}
	return p
}

// Save writes data to the sheet file for name and returns the path written.
//
// Postcondition: Returns ErrEmptySheet without touching disk when data is empty.
func (s *SheetStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptySheet
	}
	path := s.Resolve(name)
	if err := writeFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads the sheet file for name.
func (s *SheetStore) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := s.Resolve(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", path, err)
	}
	return data, nil
}

// List returns the sheet file names in Dir, sorted.
func (s *SheetStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.Dir, err)
	}
	out := []string{}
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == SheetExtension {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}
