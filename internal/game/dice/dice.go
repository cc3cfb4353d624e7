// Package dice provides polyhedral die values for character sheets and the rolling
// machinery used when generating ability scores.
package dice

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Die is a single polyhedral die, written on sheets as "d<sides>" (e.g. "d8").
//
// Invariant: Sides >= 2 for any Die produced by ParseDie.
type Die struct {
	Sides int
}

// Standard dice used by the supported rulesets.
var (
	D4  = Die{Sides: 4}
	D6  = Die{Sides: 6}
	D8  = Die{Sides: 8}
	D10 = Die{Sides: 10}
	D12 = Die{Sides: 12}
	D20 = Die{Sides: 20}
)

// String returns the "d<sides>" label.
func (d Die) String() string {
	return "d" + strconv.Itoa(d.Sides)
}

// ParseDie parses a "d<sides>" label. The leading "d" is optional and case-insensitive.
//
// Postcondition: Returns a Die with Sides >= 2, or a non-nil error.
func ParseDie(s string) (Die, error) {
	trimmed := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "d")
	sides, err := strconv.Atoi(trimmed)
	if err != nil {
		return Die{}, fmt.Errorf("dice: invalid die %q: %w", s, err)
	}
	if sides < 2 {
		return Die{}, fmt.Errorf("dice: invalid die %q: sides must be >= 2", s)
	}
	return Die{Sides: sides}, nil
}

// MarshalJSON writes the die as its "d<sides>" label.
func (d Die) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts either a "d<sides>" label or an object with a "sides" field.
func (d *Die) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		parsed, err := ParseDie(label)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	var obj struct {
		Sides int `json:"sides"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("dice: cannot decode die: %w", err)
	}
	if obj.Sides < 2 {
		return fmt.Errorf("dice: sides must be >= 2, got %d", obj.Sides)
	}
	d.Sides = obj.Sides
	return nil
}

// UnmarshalYAML accepts the "d<sides>" label form in YAML documents.
func (d *Die) UnmarshalYAML(unmarshal func(any) error) error {
	var label string
	if err := unmarshal(&label); err != nil {
		return err
	}
	parsed, err := ParseDie(label)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// RollResult holds the audit trail for a single roll.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // original expression string, e.g. "4d6kh3"
	Dice       []int  // kept die results before modifier
	Modifier   int
}

// Total returns the sum of the kept dice plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

func (r RollResult) String() string {
	return fmt.Sprintf("%s → %v %+d = %d", r.Expression, r.Dice, r.Modifier, r.Total())
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
