// Package dnd5e defines the Dungeons & Dragons fifth-edition character model and the pure
// functions that derive its computed traits.
package dnd5e

import "fmt"

// AbilityName is one of the six fifth-edition abilities.
type AbilityName string

// Abilities in sheet order.
const (
	Strength     AbilityName = "Strength"
	Dexterity    AbilityName = "Dexterity"
	Constitution AbilityName = "Constitution"
	Intelligence AbilityName = "Intelligence"
	Wisdom       AbilityName = "Wisdom"
	Charisma     AbilityName = "Charisma"
)

// AbilityNames returns the six abilities in sheet order.
func AbilityNames() []AbilityName {
	return []AbilityName{Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma}
}

// ParseAbilityName matches s exactly against the six ability names.
func ParseAbilityName(s string) (AbilityName, error) {
	for _, n := range AbilityNames() {
		if string(n) == s {
			return n, nil
		}
	}
	return "", fmt.Errorf("dnd5e: unknown ability %q", s)
}

// Proficiency is a skill or saving-throw training level.
type Proficiency string

// Proficiency levels.
const (
	NotProficient Proficiency = "none"
	Proficient    Proficiency = "proficient"
	Expertise     Proficiency = "expertise"
)

// ParseProficiency accepts "none", "proficient" or "expertise"; the empty string means none.
func ParseProficiency(s string) (Proficiency, error) {
	switch Proficiency(s) {
	case "", NotProficient:
		return NotProficient, nil
	case Proficient, Expertise:
		return Proficiency(s), nil
	}
	return "", fmt.Errorf("dnd5e: unknown proficiency %q", s)
}

// Multiplier returns how many times the proficiency bonus applies: 0, 1 or 2.
// Unrecognised values count as no proficiency.
func (p Proficiency) Multiplier() int {
	switch p {
	case Proficient:
		return 1
	case Expertise:
		return 2
	default:
		return 0
	}
}

// Skill is a trained use of an ability. Ability names the owning ability for lookup only.
type Skill struct {
	Name        string      `json:"name"`
	Proficiency Proficiency `json:"proficiency"`
	Ability     AbilityName `json:"ability"`
}

// Ability is one ability score with its saving-throw proficiency and associated skills.
//
// The modifier is always derived from Score and is never serialized.
type Ability struct {
	Name        AbilityName `json:"name"`
	Score       int         `json:"score"`
	SavingThrow Proficiency `json:"savingThrow"`
	Skills      []Skill     `json:"skills"`
}

// Modifier returns AbilityModifier(a.Score).
func (a Ability) Modifier() int {
	return AbilityModifier(a.Score)
}

// Skill returns a pointer to the named skill within a, or nil.
func (a *Ability) Skill(name string) *Skill {
	for i := range a.Skills {
		if a.Skills[i].Name == name {
			return &a.Skills[i]
		}
	}
	return nil
}

// standardSkills lists the fifth-edition skills per ability in sheet order.
var standardSkills = map[AbilityName][]string{
	Strength:     {"Athletics"},
	Dexterity:    {"Acrobatics", "Sleight of Hand", "Stealth"},
	Constitution: nil,
	Intelligence: {"Arcana", "History", "Investigation", "Nature", "Religion"},
	Wisdom:       {"Animal Handling", "Insight", "Medicine", "Perception", "Survival"},
	Charisma:     {"Deception", "Intimidation", "Performance", "Persuasion"},
}

// BaseAbilities returns the six abilities at score 10 with every standard skill untrained.
//
// Postcondition: len(result) == 6, in AbilityNames order; 18 skills in total.
func BaseAbilities() []Ability {
	out := make([]Ability, 0, 6)
	for _, name := range AbilityNames() {
		a := Ability{Name: name, Score: 10, SavingThrow: NotProficient, Skills: []Skill{}}
		for _, s := range standardSkills[name] {
			a.Skills = append(a.Skills, Skill{Name: s, Proficiency: NotProficient, Ability: name})
		}
		out = append(out, a)
	}
	return out
}
