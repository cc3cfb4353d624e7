// Package cofd defines the Chronicles of Darkness character model shared by Mortal and
// Changeling sheets, and the pure functions that derive their advantages.
package cofd

import "fmt"

// Attribute names one of the nine dot-rated attributes.
type Attribute string

// Attributes in sheet order: mental, physical, social.
const (
	Intelligence Attribute = "Intelligence"
	Wits         Attribute = "Wits"
	Resolve      Attribute = "Resolve"
	Strength     Attribute = "Strength"
	Dexterity    Attribute = "Dexterity"
	Stamina      Attribute = "Stamina"
	Presence     Attribute = "Presence"
	Manipulation Attribute = "Manipulation"
	Composure    Attribute = "Composure"
)

// Attributes returns the nine attributes in sheet order.
func Attributes() []Attribute {
	return []Attribute{
		Intelligence, Wits, Resolve,
		Strength, Dexterity, Stamina,
		Presence, Manipulation, Composure,
	}
}

// ParseAttribute matches s exactly against the attribute names.
func ParseAttribute(s string) (Attribute, error) {
	for _, a := range Attributes() {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("cofd: unknown attribute %q", s)
}

// Skill names one of the twenty-four dot-rated skills.
type Skill string

// Skills grouped mental, physical, social.
const (
	Academics     Skill = "Academics"
	Computer      Skill = "Computer"
	Crafts        Skill = "Crafts"
	Investigation Skill = "Investigation"
	Medicine      Skill = "Medicine"
	Occult        Skill = "Occult"
	Politics      Skill = "Politics"
	Science       Skill = "Science"

	Athletics Skill = "Athletics"
	Brawl     Skill = "Brawl"
	Drive     Skill = "Drive"
	Firearms  Skill = "Firearms"
	Larceny   Skill = "Larceny"
	Stealth   Skill = "Stealth"
	Survival  Skill = "Survival"
	Weaponry  Skill = "Weaponry"

	AnimalKen    Skill = "Animal Ken"
	Empathy      Skill = "Empathy"
	Expression   Skill = "Expression"
	Intimidation Skill = "Intimidation"
	Persuasion   Skill = "Persuasion"
	Socialize    Skill = "Socialize"
	Streetwise   Skill = "Streetwise"
	Subterfuge   Skill = "Subterfuge"
)

// Skills returns the twenty-four skills in sheet order.
func Skills() []Skill {
	return []Skill{
		Academics, Computer, Crafts, Investigation, Medicine, Occult, Politics, Science,
		Athletics, Brawl, Drive, Firearms, Larceny, Stealth, Survival, Weaponry,
		AnimalKen, Empathy, Expression, Intimidation, Persuasion, Socialize, Streetwise, Subterfuge,
	}
}

// ParseSkill matches s exactly against the skill names.
func ParseSkill(s string) (Skill, error) {
	for _, sk := range Skills() {
		if string(sk) == s {
			return sk, nil
		}
	}
	return "", fmt.Errorf("cofd: unknown skill %q", s)
}

// MaxDots is the highest rating an attribute, skill or merit may carry.
const MaxDots = 5

func checkDots(name string, dots int) error {
	if dots < 0 || dots > MaxDots {
		return fmt.Errorf("cofd: %s must be between 0 and %d, got %d", name, MaxDots, dots)
	}
	return nil
}

// Merit is a purchased advantage rated in dots.
type Merit struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
	Dots        int    `json:"dots" yaml:"dots"`
}
