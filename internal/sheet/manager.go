package sheet

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/ocsm/internal/game/gamesystem"
)

// MetadataSelector is the part of the metadata manager the sheet manager drives: the
// read-only catalog plus game-system selection.
type MetadataSelector interface {
	Catalog
	Select(ctx context.Context, id gamesystem.ID) error
}

// OpenSheet is a session registered with a Manager.
type OpenSheet struct {
	// ID uniquely identifies the open sheet.
	ID uuid.UUID
	// Name is the display name, unique among open sheets.
	Name string
	// Session edits the sheet's character.
	Session *Session
}

// Manager tracks every open sheet.
// All methods are safe for concurrent use.
type Manager struct {
	mu     sync.RWMutex
	sheets map[uuid.UUID]*OpenSheet
	order  []uuid.UUID
	meta   MetadataSelector
	logger *zap.Logger
}

// NewManager creates an empty sheet Manager. meta may be nil when no catalog is used.
func NewManager(meta MetadataSelector, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sheets: make(map[uuid.UUID]*OpenSheet),
		meta:   meta,
		logger: logger,
	}
}

// Open starts a session for ch and registers it.
//
// Postcondition: The sheet's Name is ch.DisplayName(), suffixed " (n)" when another open
// sheet already uses that name.
func (m *Manager) Open(ch Character) (*OpenSheet, error) {
	var cat Catalog
	if m.meta != nil {
		cat = m.meta
	}
	sess, err := NewSession(ch, cat, m.logger)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	sh := &OpenSheet{ID: uuid.New(), Name: m.uniqueName(ch.DisplayName()), Session: sess}
	m.sheets[sh.ID] = sh
	m.order = append(m.order, sh.ID)
	m.logger.Info("sheet opened",
		zap.String("id", sh.ID.String()),
		zap.String("name", sh.Name),
		zap.String("game_system", string(ch.System())),
	)
	return sh, nil
}

// uniqueName counts open sheets already named base or "base (n)". Caller holds m.mu.
func (m *Manager) uniqueName(base string) string {
	taken := make(map[string]bool, len(m.sheets))
	dupes := 0
	for _, s := range m.sheets {
		taken[s.Name] = true
		if s.Name == base || strings.HasPrefix(s.Name, base+" (") {
			dupes++
		}
	}
	if dupes == 0 {
		return base
	}
	for n := dupes; ; n++ {
		name := fmt.Sprintf("%s (%d)", base, n)
		if !taken[name] {
			return name
		}
	}
}

// Close removes an open sheet.
//
// Postcondition: Returns ErrNotFound if id is not open.
func (m *Manager) Close(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sheets[id]; !ok {
		return fmt.Errorf("%w: sheet %s", ErrNotFound, id)
	}
	delete(m.sheets, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.logger.Info("sheet closed", zap.String("id", id.String()))
	return nil
}

// Get returns the open sheet with id.
func (m *Manager) Get(id uuid.UUID) (*OpenSheet, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sheets[id]
	return s, ok
}

// List returns the open sheets in the order they were opened.
func (m *Manager) List() []*OpenSheet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*OpenSheet, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.sheets[id])
	}
	return out
}

// LoadDocument parses a saved sheet, selects its game system's catalog, and opens it.
//
// Postcondition: A document with an unknown game system opens nothing and returns
// ErrUnknownGameSystem.
func (m *Manager) LoadDocument(ctx context.Context, data []byte) (*OpenSheet, error) {
	snap, err := ParseSnapshot(data)
	if err != nil {
		m.logger.Info("sheet document discarded", zap.Error(err))
		return nil, err
	}
	ch, err := Decode(snap)
	if err != nil {
		return nil, err
	}
	if m.meta != nil && m.meta.Current().System != snap.GameSystem {
		if err := m.meta.Select(ctx, snap.GameSystem); err != nil {
			return nil, fmt.Errorf("selecting %s metadata: %w", snap.GameSystem, err)
		}
	}
	return m.Open(ch)
}
