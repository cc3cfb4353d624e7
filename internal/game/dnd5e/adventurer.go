package dnd5e

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/ocsm/internal/game/dice"
	"github.com/cory-johannsen/ocsm/internal/game/gamesystem"
)

// ErrItemNotFound is returned when an inventory operation names an item the character lacks.
var ErrItemNotFound = errors.New("item not found in inventory")

// Adventurer is a fifth-edition player character.
//
// Race and Background hold copies of the catalog entries they were attached from;
// later catalog edits do not change an existing sheet.
type Adventurer struct {
	Name       string        `json:"name"`
	Player     string        `json:"player"`
	GameSystem gamesystem.ID `json:"gameSystem"`

	Abilities  []Ability    `json:"abilities"`
	Alignment  string       `json:"alignment"`
	Background *Background  `json:"background"`
	Race       *Race        `json:"race"`
	Classes    []ClassLevel `json:"classes"`
	Inventory  []Item       `json:"inventory"`
	CoinPurse  CoinPurse    `json:"coinPurse"`
	HP         HitPoints    `json:"hp"`

	Inspiration          bool      `json:"inspiration"`
	BardicInspiration    bool      `json:"bardicInspiration"`
	BardicInspirationDie *dice.Die `json:"bardicInspirationDie"`

	PersonalityTraits string `json:"personalityTraits"`
	Ideals            string `json:"ideals"`
	Bonds             string `json:"bonds"`
	Flaws             string `json:"flaws"`
}

// NewAdventurer returns a blank sheet with base abilities and no attachments.
//
// Postcondition: GameSystem == gamesystem.Fifth; all collections are non-nil.
func NewAdventurer() *Adventurer {
	return &Adventurer{
		GameSystem: gamesystem.Fifth,
		Abilities:  BaseAbilities(),
		Classes:    []ClassLevel{},
		Inventory:  []Item{},
	}
}

// System reports the game system the sheet belongs to.
func (a *Adventurer) System() gamesystem.ID { return gamesystem.Fifth }

// DisplayName returns the character name, or a placeholder for an unnamed sheet.
func (a *Adventurer) DisplayName() string {
	if a.Name == "" {
		return "New Adventurer"
	}
	return a.Name
}

// Ability returns a pointer to the named ability, or nil if the sheet lacks it.
func (a *Adventurer) Ability(name AbilityName) *Ability {
	for i := range a.Abilities {
		if a.Abilities[i].Name == name {
			return &a.Abilities[i]
		}
	}
	return nil
}

// Score returns the named ability score, treating a missing ability as 10.
func (a *Adventurer) Score(name AbilityName) int {
	if ab := a.Ability(name); ab != nil {
		return ab.Score
	}
	return 10
}

// Skill returns the named skill and its owning ability, or (nil, nil).
func (a *Adventurer) Skill(name string) (*Ability, *Skill) {
	for i := range a.Abilities {
		if s := a.Abilities[i].Skill(name); s != nil {
			return &a.Abilities[i], s
		}
	}
	return nil, nil
}

// SetAbilityScore updates one ability score.
//
// Postcondition: Returns an error if the ability is unknown or score < 0.
func (a *Adventurer) SetAbilityScore(name AbilityName, score int) error {
	if score < 0 {
		return fmt.Errorf("ability score must be >= 0, got %d", score)
	}
	ab := a.Ability(name)
	if ab == nil {
		return fmt.Errorf("dnd5e: unknown ability %q", name)
	}
	ab.Score = score
	return nil
}

// AttachRace replaces the race with a copy of r; nil clears it.
func (a *Adventurer) AttachRace(r *Race) {
	if r == nil {
		a.Race = nil
		return
	}
	c := r.Clone()
	a.Race = &c
}

// AttachBackground replaces the background with a copy of b; nil clears it.
func (a *Adventurer) AttachBackground(b *Background) {
	if b == nil {
		a.Background = nil
		return
	}
	c := b.Clone()
	a.Background = &c
}

// SetClassLevel sets the level for class c, adding the class if missing.
// A level <= 0 removes the class.
func (a *Adventurer) SetClassLevel(c Class, level int) {
	for i := range a.Classes {
		if a.Classes[i].Class.Name == c.Name {
			if level <= 0 {
				a.Classes = append(a.Classes[:i], a.Classes[i+1:]...)
			} else {
				a.Classes[i].Level = level
			}
			return
		}
	}
	if level > 0 {
		a.Classes = append(a.Classes, ClassLevel{Class: c.Clone(), Level: level})
	}
}

// TotalLevel sums all class levels.
func (a *Adventurer) TotalLevel() int {
	total := 0
	for _, cl := range a.Classes {
		total += cl.Level
	}
	return total
}

// AddItem appends a copy of it to the inventory, unequipped.
func (a *Adventurer) AddItem(it Item) {
	c := it.Clone()
	c.Equipped = false
	a.Inventory = append(a.Inventory, c)
}

// RemoveItem removes the first inventory item with the given name.
//
// Postcondition: Returns ErrItemNotFound if no item matched.
func (a *Adventurer) RemoveItem(name string) error {
	for i := range a.Inventory {
		if a.Inventory[i].Name == name {
			a.Inventory = append(a.Inventory[:i], a.Inventory[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrItemNotFound, name)
}

// EquipItem sets the equipped flag on the first inventory item with the given name.
//
// Postcondition: Returns ErrItemNotFound if no item matched.
func (a *Adventurer) EquipItem(name string, equipped bool) error {
	for i := range a.Inventory {
		if a.Inventory[i].Name == name {
			a.Inventory[i].Equipped = equipped
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrItemNotFound, name)
}

// Clone returns a deep copy of a.
func (a *Adventurer) Clone() *Adventurer {
	out := *a
	out.Abilities = make([]Ability, len(a.Abilities))
	for i, ab := range a.Abilities {
		ab.Skills = append([]Skill(nil), ab.Skills...)
		out.Abilities[i] = ab
	}
	if a.Background != nil {
		b := a.Background.Clone()
		out.Background = &b
	}
	if a.Race != nil {
		r := a.Race.Clone()
		out.Race = &r
	}
	out.Classes = make([]ClassLevel, len(a.Classes))
	for i, cl := range a.Classes {
		out.Classes[i] = ClassLevel{Class: cl.Class.Clone(), Level: cl.Level}
	}
	out.Inventory = make([]Item, len(a.Inventory))
	for i, it := range a.Inventory {
		out.Inventory[i] = it.Clone()
	}
	if a.BardicInspirationDie != nil {
		d := *a.BardicInspirationDie
		out.BardicInspirationDie = &d
	}
	return &out
}
