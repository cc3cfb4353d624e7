package dnd5e

import "github.com/cory-johannsen/ocsm/internal/game/bonus"

// Rule constants.
const (
	// UnarmoredArmorClass is the armor class base before armor or dexterity.
	UnarmoredArmorClass = 10
	// BaseProficiencyBonus is the proficiency bonus of a first-level character.
	BaseProficiencyBonus = 2
)

// Traits is the set of derived values shown on a fifth-edition sheet.
type Traits struct {
	ArmorClass       int `json:"armorClass"`
	Initiative       int `json:"initiative"`
	Speed            int `json:"speed"`
	ProficiencyBonus int `json:"proficiencyBonus"`
}

// AbilityModifier returns floor((score - 10) / 2).
//
// Postcondition: Rounds toward negative infinity, so 9 yields -1 and 8 yields -1.
func AbilityModifier(score int) int {
	d := score - 10
	if d < 0 && d%2 != 0 {
		return d/2 - 1
	}
	return d / 2
}

// ProficiencyBonus returns the proficiency bonus for a total character level.
// Levels below 1 are treated as level 1.
//
// Postcondition: Returns 2 at levels 1-4, 3 at 5-8, and so on.
func ProficiencyBonus(totalLevel int) int {
	if totalLevel < 1 {
		totalLevel = 1
	}
	return BaseProficiencyBonus + (totalLevel-1)/4
}

// SkillBonus returns the ability modifier plus the proficiency bonus scaled by the
// skill's proficiency: x0 untrained, x1 proficient, x2 expertise.
func SkillBonus(ability Ability, skill Skill, proficiencyBonus int) int {
	return ability.Modifier() + proficiencyBonus*skill.Proficiency.Multiplier()
}

// SavingThrowBonus applies the same rule as SkillBonus to the ability's saving throw.
func SavingThrowBonus(ability Ability, proficiencyBonus int) int {
	return ability.Modifier() + proficiencyBonus*ability.SavingThrow.Multiplier()
}

// Features returns the feature sources that contribute bonuses, in evaluation order:
// background features, then race features. Absent attachments contribute nothing.
func Features(c *Adventurer) [][]bonus.Feature {
	var bg, race []bonus.Feature
	if c.Background != nil {
		bg = c.Background.Features
	}
	if c.Race != nil {
		race = c.Race.Features
	}
	return [][]bonus.Feature{bg, race}
}

// ActiveArmor returns the first equipped armor in inventory order whose minimum strength
// requirement is met by the character's Strength score.
//
// Postcondition: Returns (nil, false) when no armor qualifies.
func ActiveArmor(c *Adventurer) (*Item, bool) {
	strength := c.Score(Strength)
	for i := range c.Inventory {
		it := &c.Inventory[i]
		if it.Equipped && it.IsArmor() && strength >= it.Armor.MinimumStrength {
			return it, true
		}
	}
	return nil, false
}

// ArmorClass computes the character's armor class.
//
// Base is 10, or the active armor's base armor class. When the armor allows it (or no armor
// is worn) the Dexterity modifier is added, capped at the armor's limit when one is set.
// Armor that disallows the bonus still lets a negative modifier through. The result is then
// folded through every ArmorClass bonus from background and race features.
func ArmorClass(c *Adventurer) int {
	ac := UnarmoredArmorClass
	addDex := true
	limited := false
	limit := 0

	if armor, ok := ActiveArmor(c); ok {
		ac = armor.Armor.BaseArmorClass
		addDex = armor.Armor.AllowDexterityBonus
		limited = armor.Armor.LimitDexterityBonus
		limit = armor.Armor.DexterityBonusLimit
	}

	dex := AbilityModifier(c.Score(Dexterity))
	switch {
	case addDex:
		if limited && dex > limit {
			dex = limit
		}
		ac += dex
	case dex < 0:
		// Negative dexterity always reduces AC.
		ac += dex
	}

	return bonus.Aggregate(ac, bonus.ArmorClass, Features(c)...)
}

// InitiativeBonus is the Dexterity modifier folded through every Initiative bonus.
func InitiativeBonus(c *Adventurer) int {
	return bonus.Aggregate(AbilityModifier(c.Score(Dexterity)), bonus.Initiative, Features(c)...)
}

// Speed starts at 0; races are expected to grant walking speed with a Set bonus.
func Speed(c *Adventurer) int {
	return bonus.Aggregate(0, bonus.Speed, Features(c)...)
}

// Calculate evaluates every derived trait of c.
//
// Postcondition: c is not modified; repeated calls with an unchanged c return equal Traits.
func Calculate(c *Adventurer) Traits {
	return Traits{
		ArmorClass:       ArmorClass(c),
		Initiative:       InitiativeBonus(c),
		Speed:            Speed(c),
		ProficiencyBonus: ProficiencyBonus(c.TotalLevel()),
	}
}
