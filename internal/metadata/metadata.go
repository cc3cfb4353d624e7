// Package metadata holds the per-game-system rules catalogs (races, kiths, merits and the
// like) and the manager that loads, saves and publishes them.
package metadata

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/ocsm/internal/game/gamesystem"
)

var (
	// ErrEmptyMetadata is returned when a metadata document has no content.
	ErrEmptyMetadata = errors.New("metadata: empty document")
	// ErrMalformedMetadata is returned when a metadata document cannot be decoded or
	// violates name uniqueness.
	ErrMalformedMetadata = errors.New("metadata: malformed document")
	// ErrUnknownCollection is returned when a collection does not belong to the container.
	ErrUnknownCollection = errors.New("metadata: unknown collection")
	// ErrNotFound is returned when a named entry does not exist.
	ErrNotFound = errors.New("metadata: entry not found")
	// ErrNoGameSystem is returned when an operation needs a selected game system.
	ErrNoGameSystem = errors.New("metadata: no game system selected")
)

// Collection names one catalog collection. Values match the JSON document keys.
type Collection string

// Catalog collections across all game systems.
const (
	Merits        Collection = "merits"
	Seemings      Collection = "seemings"
	Kiths         Collection = "kiths"
	Courts        Collection = "courts"
	Regalia       Collection = "regalia"
	ContractTypes Collection = "contractTypes"
	Races         Collection = "races"
	Backgrounds   Collection = "backgrounds"
	Classes       Collection = "classes"
	Items         Collection = "items"
)

// Entry is a catalog record: one of the cofd or dnd5e catalog value types
// (cofd.Merit, cofd.Seeming, dnd5e.Race, dnd5e.Item, ...).
type Entry any

// Container is a typed catalog for one game system.
//
// A Container reachable from Manager.Current is never modified; edits go through Clone.
type Container interface {
	// System reports the game system this catalog serves.
	System() gamesystem.ID
	// Deserialize replaces every collection from a JSON document.
	//
	// Postcondition: Returns ErrEmptyMetadata or ErrMalformedMetadata and leaves the
	// container unchanged when the document is empty or invalid.
	Deserialize(data []byte) error
	// Serialize encodes every collection as a JSON document.
	Serialize() ([]byte, error)
	// IsEmpty reports whether every collection has zero entries.
	IsEmpty() bool
	// Lookup returns a copy of the entry with exactly the given name.
	Lookup(collection Collection, name string) (Entry, bool)
	// Collections lists the collections this container holds.
	Collections() []Collection
	// Names lists the entry names of a collection in stored order.
	Names(collection Collection) []string
	// Put inserts entry, or replaces the entry of the same name, in its collection.
	Put(entry Entry) error
	// Remove deletes the named entry.
	Remove(collection Collection, name string) error
	// Clone returns a deep copy.
	Clone() Container
}

// New returns an empty container for id.
//
// Postcondition: Returns an error for gamesystem.None or an unknown id.
func New(id gamesystem.ID) (Container, error) {
	switch id {
	case gamesystem.Changeling:
		return NewChangelingContainer(), nil
	case gamesystem.Mortal:
		return NewCoreContainer(), nil
	case gamesystem.Fifth:
		return NewFifthContainer(), nil
	default:
		return nil, fmt.Errorf("metadata: no container for game system %q", id)
	}
}
