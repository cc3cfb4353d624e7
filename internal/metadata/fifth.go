package metadata

import (
	"encoding/json"
	"fmt"

	"github.com/cory-johannsen/ocsm/internal/game/bonus"
	"github.com/cory-johannsen/ocsm/internal/game/dnd5e"
	"github.com/cory-johannsen/ocsm/internal/game/gamesystem"
)

func raceName(r dnd5e.Race) string             { return r.Name }
func backgroundName(b dnd5e.Background) string { return b.Name }
func className(c dnd5e.Class) string           { return c.Name }
func itemName(i dnd5e.Item) string             { return i.Name }

// FifthContainer is the Dungeons & Dragons fifth-edition catalog.
type FifthContainer struct {
	doc fifthDocument
}

type fifthDocument struct {
	Races       []dnd5e.Race       `json:"races"`
	Backgrounds []dnd5e.Background `json:"backgrounds"`
	Classes     []dnd5e.Class      `json:"classes"`
	Items       []dnd5e.Item       `json:"items"`
}

func (d fifthDocument) normalized() fifthDocument {
	return fifthDocument{
		Races:       orEmpty(d.Races),
		Backgrounds: orEmpty(d.Backgrounds),
		Classes:     orEmpty(d.Classes),
		Items:       orEmpty(d.Items),
	}
}

func (d fifthDocument) validate() error {
	if err := unique(Races, d.Races, raceName); err != nil {
		return err
	}
	if err := unique(Backgrounds, d.Backgrounds, backgroundName); err != nil {
		return err
	}
	if err := unique(Classes, d.Classes, className); err != nil {
		return err
	}
	if err := unique(Items, d.Items, itemName); err != nil {
		return err
	}
	for _, r := range d.Races {
		if err := validateFeatures(Races, r.Name, r.Features); err != nil {
			return err
		}
	}
	for _, b := range d.Backgrounds {
		if err := validateFeatures(Backgrounds, b.Name, b.Features); err != nil {
			return err
		}
	}
	for _, it := range d.Items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("%w: item %q: %v", ErrMalformedMetadata, it.Name, err)
		}
	}
	return nil
}

// NewFifthContainer returns an empty fifth-edition catalog.
func NewFifthContainer() *FifthContainer {
	return &FifthContainer{doc: fifthDocument{}.normalized()}
}

// System reports gamesystem.Fifth.
func (c *FifthContainer) System() gamesystem.ID { return gamesystem.Fifth }

// Deserialize replaces races, backgrounds, classes and items from a JSON document.
// Feature bonuses and items are validated before anything is replaced.
//
// Postcondition: Returns ErrEmptyMetadata or ErrMalformedMetadata and leaves the catalog untouched on failure.
func (c *FifthContainer) Deserialize(data []byte) error {
	var doc fifthDocument
	if err := decode(data, &doc); err != nil {
		return err
	}
	if err := doc.validate(); err != nil {
		return err
	}
	c.doc = doc.normalized()
	return nil
}

// Serialize renders the catalog as a JSON document.
func (c *FifthContainer) Serialize() ([]byte, error) {
	return json.Marshal(c.doc.normalized())
}

// IsEmpty reports whether every collection is empty.
func (c *FifthContainer) IsEmpty() bool {
	d := c.doc
	return len(d.Races) == 0 && len(d.Backgrounds) == 0 && len(d.Classes) == 0 && len(d.Items) == 0
}

// Collections lists races, backgrounds, classes and items.
func (c *FifthContainer) Collections() []Collection {
	return []Collection{Races, Backgrounds, Classes, Items}
}

// Lookup finds an entry by exact name; an unknown collection finds nothing.
func (c *FifthContainer) Lookup(collection Collection, name string) (Entry, bool) {
	switch collection {
	case Races:
		if r, ok := c.Race(name); ok {
			return r, true
		}
	case Backgrounds:
		if b, ok := c.Background(name); ok {
			return b, true
		}
	case Classes:
		if cl, ok := c.Class(name); ok {
			return cl, true
		}
	case Items:
		if it, ok := c.Item(name); ok {
			return it, true
		}
	}
	return nil, false
}

// Names lists entry names of collection in catalog order.
func (c *FifthContainer) Names(collection Collection) []string {
	switch collection {
	case Races:
		return names(c.doc.Races, raceName)
	case Backgrounds:
		return names(c.doc.Backgrounds, backgroundName)
	case Classes:
		return names(c.doc.Classes, className)
	case Items:
		return names(c.doc.Items, itemName)
	}
	return nil
}

// Put upserts a dnd5e catalog value into its collection by name.
func (c *FifthContainer) Put(entry Entry) error {
	var err error
	switch v := entry.(type) {
	case dnd5e.Race:
		if err = validateFeatures(Races, v.Name, v.Features); err == nil {
			c.doc.Races, err = upsert(Races, c.doc.Races, v.Clone(), raceName)
		}
	case dnd5e.Background:
		if err = validateFeatures(Backgrounds, v.Name, v.Features); err == nil {
			c.doc.Backgrounds, err = upsert(Backgrounds, c.doc.Backgrounds, v.Clone(), backgroundName)
		}
	case dnd5e.Class:
		c.doc.Classes, err = upsert(Classes, c.doc.Classes, v.Clone(), className)
	case dnd5e.Item:
		if err = v.Validate(); err == nil {
			c.doc.Items, err = upsert(Items, c.doc.Items, v.Clone(), itemName)
		}
	default:
		err = fmt.Errorf("%w: %T in %s catalog", ErrUnknownCollection, entry, c.System())
	}
	return err
}

// Remove deletes the named entry from collection.
func (c *FifthContainer) Remove(collection Collection, name string) error {
	var err error
	switch collection {
	case Races:
		c.doc.Races, err = remove(collection, c.doc.Races, name, raceName)
	case Backgrounds:
		c.doc.Backgrounds, err = remove(collection, c.doc.Backgrounds, name, backgroundName)
	case Classes:
		c.doc.Classes, err = remove(collection, c.doc.Classes, name, className)
	case Items:
		c.doc.Items, err = remove(collection, c.doc.Items, name, itemName)
	default:
		err = fmt.Errorf("%w: %s in %s catalog", ErrUnknownCollection, collection, c.System())
	}
	return err
}

// Clone returns a deep copy.
func (c *FifthContainer) Clone() Container {
	d := c.doc
	out := fifthDocument{
		Races:       make([]dnd5e.Race, len(d.Races)),
		Backgrounds: make([]dnd5e.Background, len(d.Backgrounds)),
		Classes:     make([]dnd5e.Class, len(d.Classes)),
		Items:       make([]dnd5e.Item, len(d.Items)),
	}
	for i, r := range d.Races {
		out.Races[i] = r.Clone()
	}
	for i, b := range d.Backgrounds {
		out.Backgrounds[i] = b.Clone()
	}
	for i, cl := range d.Classes {
		out.Classes[i] = cl.Clone()
	}
	for i, it := range d.Items {
		out.Items[i] = it.Clone()
	}
	return &FifthContainer{doc: out}
}

// Race returns a copy of the named race.
func (c *FifthContainer) Race(name string) (dnd5e.Race, bool) {
	r, ok := lookup(c.doc.Races, name, raceName)
	return r.Clone(), ok
}

// Background returns a copy of the named background.
func (c *FifthContainer) Background(name string) (dnd5e.Background, bool) {
	b, ok := lookup(c.doc.Backgrounds, name, backgroundName)
	return b.Clone(), ok
}

// Class returns a copy of the named class.
func (c *FifthContainer) Class(name string) (dnd5e.Class, bool) {
	cl, ok := lookup(c.doc.Classes, name, className)
	return cl.Clone(), ok
}

// Item returns a copy of the named item.
func (c *FifthContainer) Item(name string) (dnd5e.Item, bool) {
	it, ok := lookup(c.doc.Items, name, itemName)
	return it.Clone(), ok
}

func validateFeatures(c Collection, owner string, features []bonus.Feature) error {
	for _, f := range features {
		for _, b := range f.NumericBonuses {
			if err := b.Validate(); err != nil {
				return fmt.Errorf("%w: %s %q feature %q: %v", ErrMalformedMetadata, c, owner, f.Name, err)
			}
		}
	}
	return nil
}
