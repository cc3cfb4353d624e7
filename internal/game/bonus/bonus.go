// Package bonus models rule-granted numeric modifications to derived traits and folds them
// into a final value.
package bonus

import (
	"fmt"
	"sort"
)

// Stat names a derived trait a NumericBonus can target.
type Stat string

// Stats a feature may modify.
const (
	ArmorClass Stat = "ArmorClass"
	Initiative Stat = "Initiative"
	Speed      Stat = "Speed"
)

var validStats = map[Stat]struct{}{
	ArmorClass: {},
	Initiative: {},
	Speed:      {},
}

// Mode selects how a bonus combines with the running total.
type Mode string

// Bonus modes.
const (
	// Add increments the running total by Value.
	Add Mode = "add"
	// Set discards everything accumulated so far and replaces it with Value.
	Set Mode = "set"
)

// NumericBonus is a single modification to one stat.
type NumericBonus struct {
	Stat  Stat `json:"stat" yaml:"stat"`
	Value int  `json:"value" yaml:"value"`
	Mode  Mode `json:"mode" yaml:"mode"`
}

// Validate reports an error if the bonus targets an unknown stat or has an unknown mode.
//
// Postcondition: Returns nil iff Stat and Mode are recognised.
func (b NumericBonus) Validate() error {
	if _, ok := validStats[b.Stat]; !ok {
		return fmt.Errorf("bonus: unknown stat %q", b.Stat)
	}
	if b.Mode != Add && b.Mode != Set {
		return fmt.Errorf("bonus: mode must be %q or %q, got %q", Add, Set, b.Mode)
	}
	return nil
}

// apply folds b into acc.
func (b NumericBonus) apply(acc int) int {
	if b.Mode == Set {
		return b.Value
	}
	return acc + b.Value
}

// Feature is a named bundle of bonuses granted by a race or background.
//
// Priority orders features within a single source; lower values are evaluated first.
type Feature struct {
	Name           string         `json:"name" yaml:"name"`
	Description    string         `json:"description,omitempty" yaml:"description"`
	Priority       int            `json:"priority,omitempty" yaml:"priority"`
	NumericBonuses []NumericBonus `json:"numericBonuses,omitempty" yaml:"numeric_bonuses"`
}

// Clone returns a deep copy of f.
func (f Feature) Clone() Feature {
	out := f
	if f.NumericBonuses != nil {
		out.NumericBonuses = make([]NumericBonus, len(f.NumericBonuses))
		copy(out.NumericBonuses, f.NumericBonuses)
	}
	return out
}

// CloneFeatures deep-copies a feature list. A nil list stays nil.
func CloneFeatures(fs []Feature) []Feature {
	if fs == nil {
		return nil
	}
	out := make([]Feature, len(fs))
	for i, f := range fs {
		out[i] = f.Clone()
	}
	return out
}

// SortFeatures returns a copy of fs ordered by Priority ascending.
// Features with equal Priority keep their stored order.
//
// Postcondition: fs is not modified.
func SortFeatures(fs []Feature) []Feature {
	out := make([]Feature, len(fs))
	copy(out, fs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// Aggregate folds every bonus targeting stat into base.
//
// Sources are walked in the order given; features within a source in SortFeatures order;
// bonuses within a feature in stored order. A Set bonus replaces the running total and a
// later Add builds on top of it.
//
// Postcondition: The result depends only on the arguments; no argument is modified.
func Aggregate(base int, stat Stat, sources ...[]Feature) int {
	acc := base
	for _, b := range Contributions(stat, sources...) {
		acc = b.apply(acc)
	}
	return acc
}

// Contributions lists the bonuses Aggregate would apply for stat, in evaluation order.
//
// Postcondition: Every returned bonus has Stat == stat.
func Contributions(stat Stat, sources ...[]Feature) []NumericBonus {
	var out []NumericBonus
	for _, source := range sources {
		for _, f := range SortFeatures(source) {
			for _, b := range f.NumericBonuses {
				if b.Stat == stat {
					out = append(out, b)
				}
			}
		}
	}
	return out
}
