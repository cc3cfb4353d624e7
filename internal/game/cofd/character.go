package cofd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/cory-johannsen/ocsm/internal/game/gamesystem"
)

// Default ratings for a blank sheet.
const (
	DefaultAttributeDots = 1
	DefaultSize          = 5
	DefaultBeats         = 5
	DefaultIntegrity     = 7
	DefaultWyrd          = 1
	MinSize              = 1
	MaxSize              = 10
	MaxWyrd              = 10
)

// Core holds the traits every Chronicles of Darkness character shares.
type Core struct {
	Name      string `json:"name"`
	Player    string `json:"player"`
	Concept   string `json:"concept"`
	Chronicle string `json:"chronicle"`

	Attributes  map[Attribute]int `json:"attributes"`
	Skills      map[Skill]int     `json:"skills"`
	Specialties []string          `json:"specialties"`
	Merits      []Merit           `json:"merits"`
	Aspirations []string          `json:"aspirations"`

	Size       int     `json:"size"`
	Health     Tracker `json:"health"`
	Willpower  Tracker `json:"willpower"`
	Beats      Tracker `json:"beats"`
	Experience int     `json:"experience"`
}

// NewCore returns a blank character with one dot in every attribute, no skills, size 5,
// and health and willpower trackers sized from those ratings.
func NewCore() Core {
	c := Core{
		Attributes:  make(map[Attribute]int, 9),
		Skills:      make(map[Skill]int, 24),
		Specialties: []string{},
		Merits:      []Merit{},
		Aspirations: []string{},
		Size:        DefaultSize,
		Health:      NewTracker(0),
		Willpower:   NewTracker(0),
		Beats:       NewTracker(DefaultBeats),
	}
	for _, a := range Attributes() {
		c.Attributes[a] = DefaultAttributeDots
	}
	for _, s := range Skills() {
		c.Skills[s] = 0
	}
	c.SyncTrackers()
	return c
}

// DisplayName returns the character name, or a placeholder for an unnamed sheet.
func (c *Core) DisplayName() string {
	if c.Name == "" {
		return "New Character"
	}
	return c.Name
}

// Attribute returns the dots in a, treating a missing rating as 0.
func (c *Core) Attribute(a Attribute) int { return c.Attributes[a] }

// Skill returns the dots in s, treating a missing rating as 0.
func (c *Core) Skill(s Skill) int { return c.Skills[s] }

// SetAttribute sets an attribute rating and resizes the derived trackers.
//
// Postcondition: Returns an error if dots is outside 0..MaxDots.
func (c *Core) SetAttribute(a Attribute, dots int) error {
	if err := checkDots(string(a), dots); err != nil {
		return err
	}
	if c.Attributes == nil {
		c.Attributes = make(map[Attribute]int, 9)
	}
	c.Attributes[a] = dots
	c.SyncTrackers()
	return nil
}

// SetSkill sets a skill rating.
//
// Postcondition: Returns an error if dots is outside 0..MaxDots.
func (c *Core) SetSkill(s Skill, dots int) error {
	if err := checkDots(string(s), dots); err != nil {
		return err
	}
	if c.Skills == nil {
		c.Skills = make(map[Skill]int, 24)
	}
	c.Skills[s] = dots
	return nil
}

// SetSize sets Size, clamped to MinSize..MaxSize, and resizes Health.
func (c *Core) SetSize(size int) {
	c.Size = ClampSize(size)
	c.SyncTrackers()
}

// SetMerit adds or re-rates a merit by name. Zero dots removes it.
//
// Postcondition: Returns an error if dots is outside 0..MaxDots.
func (c *Core) SetMerit(m Merit, dots int) error {
	if err := checkDots(m.Name, dots); err != nil {
		return err
	}
	i := slices.IndexFunc(c.Merits, func(x Merit) bool { return x.Name == m.Name })
	switch {
	case i >= 0 && dots == 0:
		c.Merits = slices.Delete(c.Merits, i, i+1)
	case i >= 0:
		c.Merits[i].Dots = dots
	case dots > 0:
		m.Dots = dots
		c.Merits = append(c.Merits, m)
	}
	return nil
}

// SyncTrackers resizes Health and Willpower to their derived maxima.
func (c *Core) SyncTrackers() {
	c.Health.SetMax(HealthMax(c))
	c.Willpower.SetMax(WillpowerMax(c))
}

func (c Core) clone() Core {
	c.Attributes = maps.Clone(c.Attributes)
	c.Skills = maps.Clone(c.Skills)
	c.Specialties = slices.Clone(c.Specialties)
	c.Merits = slices.Clone(c.Merits)
	c.Aspirations = slices.Clone(c.Aspirations)
	c.Health = c.Health.Clone()
	c.Willpower = c.Willpower.Clone()
	c.Beats = c.Beats.Clone()
	return c
}

// Mortal is a Chronicles of Darkness mortal character.
type Mortal struct {
	GameSystem gamesystem.ID `json:"gameSystem"`
	Core
	Integrity int    `json:"integrity"`
	Faction   string `json:"faction"`
	GroupName string `json:"groupName"`
	Vice      string `json:"vice"`
	Virtue    string `json:"virtue"`
}

// NewMortal returns a blank mortal with Integrity 7.
func NewMortal() *Mortal {
	return &Mortal{GameSystem: gamesystem.Mortal, Core: NewCore(), Integrity: DefaultIntegrity}
}

// System reports the game system the sheet belongs to.
func (m *Mortal) System() gamesystem.ID { return gamesystem.Mortal }

// Clone returns a deep copy of m.
func (m *Mortal) Clone() *Mortal {
	out := *m
	out.Core = m.Core.clone()
	return &out
}

// SetIntegrity sets Integrity.
//
// Postcondition: Returns an error if value is outside 0..10.
func (m *Mortal) SetIntegrity(value int) error {
	if value < 0 || value > 10 {
		return fmt.Errorf("cofd: integrity must be between 0 and 10, got %d", value)
	}
	m.Integrity = value
	return nil
}

// Changeling is a Changeling: The Lost character.
//
// Seeming, Kith and Court hold copies of the catalog entries they were attached from.
type Changeling struct {
	GameSystem gamesystem.ID `json:"gameSystem"`
	Core
	Seeming        *Seeming   `json:"seeming"`
	Kith           *Kith      `json:"kith"`
	Court          *Court     `json:"court"`
	Needle         string     `json:"needle"`
	Thread         string     `json:"thread"`
	Clarity        Tracker    `json:"clarity"`
	Glamour        Tracker    `json:"glamour"`
	Wyrd           int        `json:"wyrd"`
	FavoredRegalia []string   `json:"favoredRegalia"`
	Contracts      []Contract `json:"contracts"`
	Frailties      []string   `json:"frailties"`
	Touchstones    []string   `json:"touchstones"`
}

// NewChangeling returns a blank changeling with Wyrd 1.
func NewChangeling() *Changeling {
	c := &Changeling{
		GameSystem:     gamesystem.Changeling,
		Core:           NewCore(),
		Clarity:        NewTracker(0),
		Glamour:        NewTracker(0),
		Wyrd:           DefaultWyrd,
		FavoredRegalia: []string{},
		Contracts:      []Contract{},
		Frailties:      []string{},
		Touchstones:    []string{},
	}
	c.SyncTrackers()
	return c
}

// System reports the game system the sheet belongs to.
func (c *Changeling) System() gamesystem.ID { return gamesystem.Changeling }

// SyncTrackers resizes Health, Willpower, Clarity and Glamour to their derived maxima.
func (c *Changeling) SyncTrackers() {
	c.Core.SyncTrackers()
	c.Clarity.SetMax(ClarityMax(&c.Core))
	c.Glamour.SetMax(GlamourMax(c.Wyrd))
}

// SetAttribute sets an attribute rating and resizes every derived tracker.
func (c *Changeling) SetAttribute(a Attribute, dots int) error {
	if err := c.Core.SetAttribute(a, dots); err != nil {
		return err
	}
	c.SyncTrackers()
	return nil
}

// SetWyrd sets Wyrd and resizes Glamour.
//
// Postcondition: Returns an error if value is outside 1..MaxWyrd.
func (c *Changeling) SetWyrd(value int) error {
	if value < 1 || value > MaxWyrd {
		return fmt.Errorf("cofd: wyrd must be between 1 and %d, got %d", MaxWyrd, value)
	}
	c.Wyrd = value
	c.SyncTrackers()
	return nil
}

// AttachSeeming replaces the seeming with a copy of s; nil clears it.
func (c *Changeling) AttachSeeming(s *Seeming) {
	if s == nil {
		c.Seeming = nil
		return
	}
	cp := *s
	c.Seeming = &cp
}

// AttachKith replaces the kith with a copy of k; nil clears it.
func (c *Changeling) AttachKith(k *Kith) {
	if k == nil {
		c.Kith = nil
		return
	}
	cp := *k
	c.Kith = &cp
}

// AttachCourt replaces the court with a copy of ct; nil clears it.
func (c *Changeling) AttachCourt(ct *Court) {
	if ct == nil {
		c.Court = nil
		return
	}
	cp := *ct
	c.Court = &cp
}

// Clone returns a deep copy of c.
func (c *Changeling) Clone() *Changeling {
	out := *c
	out.Core = c.Core.clone()
	if c.Seeming != nil {
		s := *c.Seeming
		out.Seeming = &s
	}
	if c.Kith != nil {
		k := *c.Kith
		out.Kith = &k
	}
	if c.Court != nil {
		ct := *c.Court
		out.Court = &ct
	}
	out.Clarity = c.Clarity.Clone()
	out.Glamour = c.Glamour.Clone()
	out.FavoredRegalia = slices.Clone(c.FavoredRegalia)
	out.Contracts = slices.Clone(c.Contracts)
	out.Frailties = slices.Clone(c.Frailties)
	out.Touchstones = slices.Clone(c.Touchstones)
	return &out
}
