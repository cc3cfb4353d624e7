package dnd5e

import (
	"github.com/cory-johannsen/ocsm/internal/game/bonus"
	"github.com/cory-johannsen/ocsm/internal/game/dice"
)

// Race is a catalog entry granting features, typically including the base walking speed.
type Race struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Size        string          `json:"size,omitempty"`
	Features    []bonus.Feature `json:"features"`
}

// Clone returns a deep copy of r.
func (r Race) Clone() Race {
	r.Features = bonus.CloneFeatures(r.Features)
	return r
}

// Background is a catalog entry granting features.
type Background struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Features    []bonus.Feature `json:"features"`
}

// Clone returns a deep copy of b.
func (b Background) Clone() Background {
	b.Features = bonus.CloneFeatures(b.Features)
	return b
}

// Class is a catalog entry for a character class.
type Class struct {
	Name           string        `json:"name"`
	Description    string        `json:"description,omitempty"`
	HitDie         dice.Die      `json:"hitDie"`
	PrimaryAbility AbilityName   `json:"primaryAbility,omitempty"`
	SavingThrows   []AbilityName `json:"savingThrows,omitempty"`
}

// Clone returns a deep copy of c.
func (c Class) Clone() Class {
	if c.SavingThrows != nil {
		c.SavingThrows = append([]AbilityName(nil), c.SavingThrows...)
	}
	return c
}

// ClassLevel records levels taken in one class.
type ClassLevel struct {
	Class Class `json:"class"`
	Level int   `json:"level"`
}
