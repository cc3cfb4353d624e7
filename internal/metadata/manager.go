package metadata

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/cory-johannsen/ocsm/internal/game/gamesystem"
)

// Store reads and writes metadata documents by file name.
type Store interface {
	// Read returns the named document.
	//
	// Postcondition: Returns (nil, nil) when the document does not exist.
	Read(ctx context.Context, name string) ([]byte, error)
	// Write replaces the named document.
	Write(ctx context.Context, name string, data []byte) error
}

// State is the published catalog: the selected game system and its container.
// Container is nil iff System is gamesystem.None.
type State struct {
	System    gamesystem.ID
	Container Container
}

type subscriber struct {
	id int
	fn func()
}

// Manager owns the current game system's catalog.
//
// Readers see State values that are swapped atomically and never modified after
// publication. Writers (Select, Load, Save, Update) are serialized.
// All methods are safe for concurrent use.
type Manager struct {
	store  Store
	logger *zap.Logger

	write sync.Mutex
	state atomic.Pointer[State]

	subMu  sync.Mutex
	subs   []subscriber
	nextID int
}

// NewManager creates a Manager with no game system selected.
//
// Precondition: store must not be nil.
func NewManager(store Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{store: store, logger: logger}
	m.state.Store(&State{System: gamesystem.None})
	return m
}

// Current returns the published state.
func (m *Manager) Current() State {
	return *m.state.Load()
}

// Subscribe registers fn to run after every successful load or save.
// Callbacks run synchronously on the caller's goroutine in subscription order.
//
// Postcondition: Calling the returned func removes the subscription.
func (m *Manager) Subscribe(fn func()) (unsubscribe func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		for i, s := range m.subs {
			if s.id == id {
				m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

func (m *Manager) notify() {
	m.subMu.Lock()
	fns := make([]func(), len(m.subs))
	for i, s := range m.subs {
		fns[i] = s.fn
	}
	m.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Select switches to game system id with a fresh container populated from "{id}.ocmd".
// Selecting gamesystem.None clears the state. No data carries over from the previous system.
//
// A missing, empty or malformed document leaves the fresh container empty; subscribers are
// notified only when a document was loaded.
// Postcondition: Returns an error only for an unknown id or a store failure.
func (m *Manager) Select(ctx context.Context, id gamesystem.ID) error {
	m.write.Lock()
	if id == gamesystem.None {
		m.state.Store(&State{System: gamesystem.None})
		m.write.Unlock()
		m.logger.Debug("metadata cleared")
		return nil
	}
	c, err := New(id)
	if err != nil {
		m.write.Unlock()
		return err
	}
	loaded, err := m.read(ctx, id, c)
	if err != nil {
		m.write.Unlock()
		return err
	}
	m.state.Store(&State{System: id, Container: c})
	m.write.Unlock()

	m.logger.Info("game system selected", zap.String("game_system", string(id)), zap.Bool("loaded", loaded))
	if loaded {
		m.notify()
	}
	return nil
}

// Load re-reads the current system's document into a fresh container and publishes it.
//
// Postcondition: A missing, empty or malformed document leaves the state unchanged
// and notifies no one.
func (m *Manager) Load(ctx context.Context) error {
	m.write.Lock()
	cur := m.state.Load()
	if cur.System == gamesystem.None {
		m.write.Unlock()
		return ErrNoGameSystem
	}
	c, err := New(cur.System)
	if err != nil {
		m.write.Unlock()
		return err
	}
	loaded, err := m.read(ctx, cur.System, c)
	if err != nil || !loaded {
		m.write.Unlock()
		return err
	}
	m.state.Store(&State{System: cur.System, Container: c})
	m.write.Unlock()

	m.logger.Info("metadata loaded", zap.String("game_system", string(cur.System)))
	m.notify()
	return nil
}

// read fills c from the store. Empty and malformed documents are logged and reported as
// not loaded rather than as errors.
func (m *Manager) read(ctx context.Context, id gamesystem.ID, c Container) (bool, error) {
	name := gamesystem.MetadataFileName(id)
	data, err := m.store.Read(ctx, name)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", name, err)
	}
	if err := c.Deserialize(data); err != nil {
		switch {
		case errors.Is(err, ErrEmptyMetadata):
			m.logger.Debug("no metadata yet", zap.String("file", name))
		case errors.Is(err, ErrMalformedMetadata):
			m.logger.Warn("ignoring malformed metadata", zap.String("file", name), zap.Error(err))
		default:
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// Save writes the current container to "{id}.ocmd".
//
// Postcondition: Returns ErrNoGameSystem when no system is selected.
func (m *Manager) Save(ctx context.Context) error {
	m.write.Lock()
	err := m.save(ctx, m.state.Load())
	m.write.Unlock()
	if err != nil {
		return err
	}
	m.notify()
	return nil
}

func (m *Manager) save(ctx context.Context, st *State) error {
	if st.System == gamesystem.None || st.Container == nil {
		return ErrNoGameSystem
	}
	data, err := st.Container.Serialize()
	if err != nil {
		return fmt.Errorf("serializing %s metadata: %w", st.System, err)
	}
	name := gamesystem.MetadataFileName(st.System)
	if err := m.store.Write(ctx, name, data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	m.logger.Info("metadata saved", zap.String("file", name), zap.Int("bytes", len(data)))
	return nil
}

// Update edits the catalog: fn mutates a clone of the current container, which is then
// published and saved. Readers never observe a partially edited container.
//
// Postcondition: When fn or the save fails, the published state is unchanged.
func (m *Manager) Update(ctx context.Context, fn func(Container) error) error {
	m.write.Lock()
	cur := m.state.Load()
	if cur.System == gamesystem.None {
		m.write.Unlock()
		return ErrNoGameSystem
	}
	c := cur.Container.Clone()
	if err := fn(c); err != nil {
		m.write.Unlock()
		return err
	}
	next := &State{System: cur.System, Container: c}
	if err := m.save(ctx, next); err != nil {
		m.write.Unlock()
		return err
	}
	m.state.Store(next)
	m.write.Unlock()

	m.notify()
	return nil
}

// Install publishes c as the current catalog for its game system and saves it.
func (m *Manager) Install(ctx context.Context, c Container) error {
	m.write.Lock()
	next := &State{System: c.System(), Container: c.Clone()}
	if err := m.save(ctx, next); err != nil {
		m.write.Unlock()
		return err
	}
	m.state.Store(next)
	m.write.Unlock()

	m.notify()
	return nil
}

// InitializeGameSystems seeds the Changeling catalog with DefaultChangeling when no
// Changeling metadata exists, then leaves no game system selected.
func (m *Manager) InitializeGameSystems(ctx context.Context) error {
	if err := m.Select(ctx, gamesystem.Changeling); err != nil {
		return err
	}
	if m.Current().Container.IsEmpty() {
		def, err := DefaultChangeling()
		if err != nil {
			return err
		}
		if err := m.Install(ctx, def); err != nil {
			return err
		}
		m.logger.Info("installed default changeling metadata")
	}
	return m.Select(ctx, gamesystem.None)
}
