package sheet

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/ocsm/internal/game/cofd"
	"github.com/cory-johannsen/ocsm/internal/game/dnd5e"
	"github.com/cory-johannsen/ocsm/internal/game/gamesystem"
)

type traitsSubscriber struct {
	id int
	fn func(Traits)
}

// Session owns exactly one character and keeps its derived traits current.
// All methods are safe for concurrent use; subscriber callbacks run on the editing goroutine
// after the session lock is released.
type Session struct {
	mu     sync.Mutex
	ch     Character
	meta   Catalog
	logger *zap.Logger
	traits Traits

	subs   []traitsSubscriber
	nextID int
}

// NewSession wraps ch. meta supplies catalog lookups for race, class, seeming and similar
// edits and may be nil when no catalog is available.
//
// Precondition: ch must be a supported character type.
// Postcondition: Returns ErrUnknownGameSystem for unsupported characters.
func NewSession(ch Character, meta Catalog, logger *zap.Logger) (*Session, error) {
	if ch == nil {
		return nil, ErrUnknownGameSystem
	}
	traits, err := Calculate(ch)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		ch:     ch,
		meta:   meta,
		logger: logger.With(zap.String("game_system", string(ch.System()))),
		traits: traits,
	}, nil
}

// System reports the session's game system.
func (s *Session) System() gamesystem.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ch.System()
}

// DisplayName returns the character's display name.
func (s *Session) DisplayName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ch.DisplayName()
}

// ApplyEdit mutates the character, recalculates every derived trait synchronously, and
// publishes the new traits to subscribers.
//
// Postcondition: On error the character and traits are unchanged.
func (s *Session) ApplyEdit(e Edit) (Traits, error) {
	s.mu.Lock()
	work := clone(s.ch)
	if err := apply(work, s.meta, e); err != nil {
		s.mu.Unlock()
		s.logger.Debug("edit rejected", zap.Stringer("edit", e), zap.Error(err))
		return Traits{}, err
	}
	traits, err := Calculate(work)
	if err != nil {
		s.mu.Unlock()
		return Traits{}, err
	}
	s.ch = work
	s.traits = traits
	subs := s.subscribers()
	s.mu.Unlock()

	s.logger.Debug("edit applied", zap.Stringer("edit", e))
	for _, fn := range subs {
		fn(traits)
	}
	return traits, nil
}

// Traits returns the current derived values.
func (s *Session) Traits() Traits {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.traits
}

// Character returns a copy of the current character.
func (s *Session) Character() Character {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.ch)
}

// Snapshot captures the character for saving.
func (s *Session) Snapshot() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Encode(s.ch)
}

// LoadSnapshot replaces the character with the one held by snap.
//
// Postcondition: Returns ErrUnknownGameSystem or ErrMalformedSheet, or ErrGameSystemMismatch
// when snap belongs to another game system; the session is unchanged on any error.
func (s *Session) LoadSnapshot(snap Snapshot) error {
	ch, err := Decode(snap)
	if err != nil {
		if errors.Is(err, ErrUnknownGameSystem) {
			s.logger.Info("discarding sheet with unknown game system", zap.String("marker", string(snap.GameSystem)))
		}
		return err
	}
	traits, err := Calculate(ch)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if ch.System() != s.ch.System() {
		cur := s.ch.System()
		s.mu.Unlock()
		return fmt.Errorf("%w: session is %s, snapshot is %s", ErrGameSystemMismatch, cur, ch.System())
	}
	s.ch = ch
	s.traits = traits
	subs := s.subscribers()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(traits)
	}
	return nil
}

// Subscribe registers fn to receive the traits after every successful edit or load.
//
// Postcondition: Calling the returned func removes the subscription.
func (s *Session) Subscribe(fn func(Traits)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, traitsSubscriber{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// subscribers copies the callbacks. Caller holds s.mu.
func (s *Session) subscribers() []func(Traits) {
	fns := make([]func(Traits), len(s.subs))
	for i, sub := range s.subs {
		fns[i] = sub.fn
	}
	return fns
}

func apply(ch Character, cat Catalog, e Edit) error {
	switch c := ch.(type) {
	case *dnd5e.Adventurer:
		return applyFifth(c, cat, e)
	case *cofd.Mortal:
		return applyMortal(c, cat, e)
	case *cofd.Changeling:
		return applyChangeling(c, cat, e)
	default:
		return ErrUnknownGameSystem
	}
}

// clone deep-copies ch so a failed edit leaves the original untouched.
func clone(ch Character) Character {
	switch c := ch.(type) {
	case *dnd5e.Adventurer:
		return c.Clone()
	case *cofd.Mortal:
		return c.Clone()
	case *cofd.Changeling:
		return c.Clone()
	default:
		return ch
	}
}
