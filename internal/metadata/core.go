package metadata

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/cory-johannsen/ocsm/internal/game/cofd"
	"github.com/cory-johannsen/ocsm/internal/game/gamesystem"
)

func meritName(m cofd.Merit) string { return m.Name }

// CoreContainer is the Mortal catalog.
type CoreContainer struct {
	merits []cofd.Merit
}

type coreDocument struct {
	Merits []cofd.Merit `json:"merits"`
}

// NewCoreContainer returns an empty Mortal catalog.
func NewCoreContainer() *CoreContainer {
	return &CoreContainer{merits: []cofd.Merit{}}
}

// System reports gamesystem.Mortal.
func (c *CoreContainer) System() gamesystem.ID { return gamesystem.Mortal }

// Deserialize replaces the merits from a JSON document.
//
// Postcondition: Returns ErrEmptyMetadata or ErrMalformedMetadata and leaves the catalog untouched on failure.
func (c *CoreContainer) Deserialize(data []byte) error {
	var doc coreDocument
	if err := decode(data, &doc); err != nil {
		return err
	}
	if err := unique(Merits, doc.Merits, meritName); err != nil {
		return err
	}
	c.merits = orEmpty(doc.Merits)
	return nil
}

// Serialize renders the catalog as a JSON document.
func (c *CoreContainer) Serialize() ([]byte, error) {
	return json.Marshal(coreDocument{Merits: orEmpty(c.merits)})
}

// IsEmpty reports whether the catalog holds no merits.
func (c *CoreContainer) IsEmpty() bool { return len(c.merits) == 0 }

// Collections lists the merits collection.
func (c *CoreContainer) Collections() []Collection { return []Collection{Merits} }

// Lookup finds a merit by exact name.
func (c *CoreContainer) Lookup(collection Collection, name string) (Entry, bool) {
	if collection != Merits {
		return nil, false
	}
	return lookup(c.merits, name, meritName)
}

// Names lists merit names in catalog order.
func (c *CoreContainer) Names(collection Collection) []string {
	if collection != Merits {
		return nil
	}
	return names(c.merits, meritName)
}

// Put adds a cofd.Merit or replaces the one with the same name.
func (c *CoreContainer) Put(entry Entry) error {
	m, ok := entry.(cofd.Merit)
	if !ok {
		return fmt.Errorf("%w: %T in %s catalog", ErrUnknownCollection, entry, c.System())
	}
	var err error
	c.merits, err = upsert(Merits, c.merits, m, meritName)
	return err
}

// Remove deletes the named merit.
func (c *CoreContainer) Remove(collection Collection, name string) error {
	if collection != Merits {
		return fmt.Errorf("%w: %s in %s catalog", ErrUnknownCollection, collection, c.System())
	}
	var err error
	c.merits, err = remove(Merits, c.merits, name, meritName)
	return err
}

// Clone returns a deep copy.
func (c *CoreContainer) Clone() Container {
	return &CoreContainer{merits: slices.Clone(orEmpty(c.merits))}
}

// Merit returns the named merit.
func (c *CoreContainer) Merit(name string) (cofd.Merit, bool) {
	return lookup(c.merits, name, meritName)
}
