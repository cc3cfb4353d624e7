// Package sheet edits one character at a time: it applies field edits, recalculates the
// derived traits for the character's game system, and converts characters to and from
// their saved snapshot form.
package sheet

import (
	"errors"

	"github.com/cory-johannsen/ocsm/internal/game/cofd"
	"github.com/cory-johannsen/ocsm/internal/game/dnd5e"
	"github.com/cory-johannsen/ocsm/internal/game/gamesystem"
	"github.com/cory-johannsen/ocsm/internal/metadata"
)

var (
	// ErrUnknownGameSystem is returned when a document's game-system marker matches no
	// known game system.
	ErrUnknownGameSystem = errors.New("sheet: unknown game system")
	// ErrGameSystemMismatch is returned when a snapshot belongs to a different game system
	// than the session it is loaded into.
	ErrGameSystemMismatch = errors.New("sheet: game system mismatch")
	// ErrMalformedSheet is returned when a sheet document cannot be decoded.
	ErrMalformedSheet = errors.New("sheet: malformed document")
	// ErrUnknownField is returned for an edit naming a field the character does not have.
	ErrUnknownField = errors.New("sheet: unknown field")
	// ErrInvalidValue is returned for an edit whose value cannot be applied.
	ErrInvalidValue = errors.New("sheet: invalid value")
	// ErrNotFound is returned when an edit names a catalog entry that does not exist.
	ErrNotFound = errors.New("sheet: not found")
)

// Character is a sheet's entity model.
// Implemented by *dnd5e.Adventurer, *cofd.Mortal and *cofd.Changeling.
type Character interface {
	System() gamesystem.ID
	DisplayName() string
}

// Catalog is the read-only view of the published metadata.
type Catalog interface {
	Current() metadata.State
}

// New returns a blank character for id.
//
// Postcondition: Returns ErrUnknownGameSystem for gamesystem.None or an unknown id.
func New(id gamesystem.ID) (Character, error) {
	switch id {
	case gamesystem.Changeling:
		return cofd.NewChangeling(), nil
	case gamesystem.Mortal:
		return cofd.NewMortal(), nil
	case gamesystem.Fifth:
		return dnd5e.NewAdventurer(), nil
	default:
		return nil, ErrUnknownGameSystem
	}
}

// Traits carries the derived values of one character. Exactly one of Fifth and CoD is set.
type Traits struct {
	System gamesystem.ID `json:"gameSystem"`
	Fifth  *dnd5e.Traits `json:"fifth,omitempty"`
	CoD    *cofd.Traits  `json:"cod,omitempty"`
}

// Calculate evaluates every derived trait of ch.
//
// Postcondition: ch is not modified; returns ErrUnknownGameSystem for an unsupported type.
func Calculate(ch Character) (Traits, error) {
	switch c := ch.(type) {
	case *dnd5e.Adventurer:
		t := dnd5e.Calculate(c)
		return Traits{System: gamesystem.Fifth, Fifth: &t}, nil
	case *cofd.Mortal:
		t := cofd.Calculate(&c.Core)
		return Traits{System: gamesystem.Mortal, CoD: &t}, nil
	case *cofd.Changeling:
		t := cofd.CalculateChangeling(c)
		return Traits{System: gamesystem.Changeling, CoD: &t}, nil
	default:
		return Traits{}, ErrUnknownGameSystem
	}
}
