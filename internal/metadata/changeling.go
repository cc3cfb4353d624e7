package metadata

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/ocsm/internal/game/cofd"
	"github.com/cory-johannsen/ocsm/internal/game/gamesystem"
)

//go:embed default_changeling.yaml
var defaultChangelingYAML []byte

func seemingName(s cofd.Seeming) string           { return s.Name }
func kithName(k cofd.Kith) string                 { return k.Name }
func courtName(c cofd.Court) string               { return c.Name }
func regaliaName(r cofd.Regalia) string           { return r.Name }
func contractTypeName(t cofd.ContractType) string { return t.Name }

// ChangelingContainer is the Changeling: The Lost catalog.
type ChangelingContainer struct {
	doc changelingDocument
}

type changelingDocument struct {
	Merits        []cofd.Merit        `json:"merits" yaml:"merits"`
	Seemings      []cofd.Seeming      `json:"seemings" yaml:"seemings"`
	Kiths         []cofd.Kith         `json:"kiths" yaml:"kiths"`
	Courts        []cofd.Court        `json:"courts" yaml:"courts"`
	Regalia       []cofd.Regalia      `json:"regalia" yaml:"regalia"`
	ContractTypes []cofd.ContractType `json:"contractTypes" yaml:"contract_types"`
}

func (d changelingDocument) normalized() changelingDocument {
	return changelingDocument{
		Merits:        orEmpty(d.Merits),
		Seemings:      orEmpty(d.Seemings),
		Kiths:         orEmpty(d.Kiths),
		Courts:        orEmpty(d.Courts),
		Regalia:       orEmpty(d.Regalia),
		ContractTypes: orEmpty(d.ContractTypes),
	}
}

func (d changelingDocument) validate() error {
	if err := unique(Merits, d.Merits, meritName); err != nil {
		return err
	}
	if err := unique(Seemings, d.Seemings, seemingName); err != nil {
		return err
	}
	if err := unique(Kiths, d.Kiths, kithName); err != nil {
		return err
	}
	if err := unique(Courts, d.Courts, courtName); err != nil {
		return err
	}
	if err := unique(Regalia, d.Regalia, regaliaName); err != nil {
		return err
	}
	return unique(ContractTypes, d.ContractTypes, contractTypeName)
}

// NewChangelingContainer returns an empty Changeling catalog.
func NewChangelingContainer() *ChangelingContainer {
	return &ChangelingContainer{doc: changelingDocument{}.normalized()}
}

// DefaultChangeling returns the catalog installed when no Changeling metadata exists yet:
// the seemings, courts, regalia and contract types of the core rules.
//
// Postcondition: Returns a non-empty container, or an error if the embedded document is invalid.
func DefaultChangeling() (*ChangelingContainer, error) {
	var doc changelingDocument
	if err := yaml.Unmarshal(defaultChangelingYAML, &doc); err != nil {
		return nil, fmt.Errorf("parsing default changeling catalog: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("default changeling catalog: %w", err)
	}
	return &ChangelingContainer{doc: doc.normalized()}, nil
}

// System reports gamesystem.Changeling.
func (c *ChangelingContainer) System() gamesystem.ID { return gamesystem.Changeling }

// Deserialize replaces every collection from a JSON document.
//
// Postcondition: Returns ErrEmptyMetadata or ErrMalformedMetadata and leaves the catalog untouched on failure.
func (c *ChangelingContainer) Deserialize(data []byte) error {
	var doc changelingDocument
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
func (c *ChangelingContainer) Serialize() ([]byte, error) {
	return json.Marshal(c.doc.normalized())
}

// IsEmpty reports whether every collection is empty.
func (c *ChangelingContainer) IsEmpty() bool {
	d := c.doc
	return len(d.Merits) == 0 && len(d.Seemings) == 0 && len(d.Kiths) == 0 &&
		len(d.Courts) == 0 && len(d.Regalia) == 0 && len(d.ContractTypes) == 0
}

// Collections lists merits, seemings, kiths, courts, regalia and contract types.
func (c *ChangelingContainer) Collections() []Collection {
	return []Collection{Merits, Seemings, Kiths, Courts, Regalia, ContractTypes}
}

// Lookup finds an entry by exact name; an unknown collection finds nothing.
func (c *ChangelingContainer) Lookup(collection Collection, name string) (Entry, bool) {
	var (
		e  Entry
		ok bool
	)
	switch collection {
	case Merits:
		e, ok = lookup(c.doc.Merits, name, meritName)
	case Seemings:
		e, ok = lookup(c.doc.Seemings, name, seemingName)
	case Kiths:
		e, ok = lookup(c.doc.Kiths, name, kithName)
	case Courts:
		e, ok = lookup(c.doc.Courts, name, courtName)
	case Regalia:
		e, ok = lookup(c.doc.Regalia, name, regaliaName)
	case ContractTypes:
		e, ok = lookup(c.doc.ContractTypes, name, contractTypeName)
	}
	if !ok {
		return nil, false
	}
	return e, true
}

// Names lists entry names of collection in catalog order.
func (c *ChangelingContainer) Names(collection Collection) []string {
	switch collection {
	case Merits:
		return names(c.doc.Merits, meritName)
	case Seemings:
		return names(c.doc.Seemings, seemingName)
	case Kiths:
		return names(c.doc.Kiths, kithName)
	case Courts:
		return names(c.doc.Courts, courtName)
	case Regalia:
		return names(c.doc.Regalia, regaliaName)
	case ContractTypes:
		return names(c.doc.ContractTypes, contractTypeName)
	}
	return nil
}

// Put upserts a cofd catalog value into its collection by name.
func (c *ChangelingContainer) Put(entry Entry) error {
	var err error
	switch v := entry.(type) {
	case cofd.Merit:
		c.doc.Merits, err = upsert(Merits, c.doc.Merits, v, meritName)
	case cofd.Seeming:
		c.doc.Seemings, err = upsert(Seemings, c.doc.Seemings, v, seemingName)
	case cofd.Kith:
		c.doc.Kiths, err = upsert(Kiths, c.doc.Kiths, v, kithName)
	case cofd.Court:
		c.doc.Courts, err = upsert(Courts, c.doc.Courts, v, courtName)
	case cofd.Regalia:
		c.doc.Regalia, err = upsert(Regalia, c.doc.Regalia, v, regaliaName)
	case cofd.ContractType:
		c.doc.ContractTypes, err = upsert(ContractTypes, c.doc.ContractTypes, v, contractTypeName)
	default:
		err = fmt.Errorf("%w: %T in %s catalog", ErrUnknownCollection, entry, c.System())
	}
	return err
}

// Remove deletes the named entry from collection.
func (c *ChangelingContainer) Remove(collection Collection, name string) error {
	var err error
	switch collection {
	case Merits:
		c.doc.Merits, err = remove(collection, c.doc.Merits, name, meritName)
	case Seemings:
		c.doc.Seemings, err = remove(collection, c.doc.Seemings, name, seemingName)
	case Kiths:
		c.doc.Kiths, err = remove(collection, c.doc.Kiths, name, kithName)
	case Courts:
		c.doc.Courts, err = remove(collection, c.doc.Courts, name, courtName)
	case Regalia:
		c.doc.Regalia, err = remove(collection, c.doc.Regalia, name, regaliaName)
	case ContractTypes:
		c.doc.ContractTypes, err = remove(collection, c.doc.ContractTypes, name, contractTypeName)
	default:
		err = fmt.Errorf("%w: %s in %s catalog", ErrUnknownCollection, collection, c.System())
	}
	return err
}

// Clone returns a deep copy.
func (c *ChangelingContainer) Clone() Container {
	d := c.doc.normalized()
	return &ChangelingContainer{doc: changelingDocument{
		Merits:        slices.Clone(d.Merits),
		Seemings:      slices.Clone(d.Seemings),
		Kiths:         slices.Clone(d.Kiths),
		Courts:        slices.Clone(d.Courts),
		Regalia:       slices.Clone(d.Regalia),
		ContractTypes: slices.Clone(d.ContractTypes),
	}}
}

// Seeming returns the named seeming.
func (c *ChangelingContainer) Seeming(name string) (cofd.Seeming, bool) {
	return lookup(c.doc.Seemings, name, seemingName)
}

// Kith returns the named kith.
func (c *ChangelingContainer) Kith(name string) (cofd.Kith, bool) {
	return lookup(c.doc.Kiths, name, kithName)
}

// Court returns the named court.
func (c *ChangelingContainer) Court(name string) (cofd.Court, bool) {
	return lookup(c.doc.Courts, name, courtName)
}

// Merit returns the named merit.
func (c *ChangelingContainer) Merit(name string) (cofd.Merit, bool) {
	return lookup(c.doc.Merits, name, meritName)
}
