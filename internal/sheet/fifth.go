package sheet

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/ocsm/internal/game/dice"
	"github.com/cory-johannsen/ocsm/internal/game/dnd5e"
	"github.com/cory-johannsen/ocsm/internal/metadata"
)

// Fifth-edition fields.
const (
	FieldAlignment         = "alignment"
	FieldAbility           = "ability"
	FieldSavingThrow       = "saving-throw"
	FieldSkill             = "skill"
	FieldRace              = "race"
	FieldBackground        = "background"
	FieldClass             = "class"
	FieldItemAdd           = "item-add"
	FieldItemRemove        = "item-remove"
	FieldItemEquip         = "item-equip"
	FieldHPCurrent         = "hp-current"
	FieldHPMax             = "hp-max"
	FieldHPTemp            = "hp-temp"
	FieldCoins             = "coins"
	FieldInspiration       = "inspiration"
	FieldBardicInspiration = "bardic-inspiration"
	FieldBardicDie         = "bardic-die"
	FieldPersonality       = "personality"
	FieldIdeals            = "ideals"
	FieldBonds             = "bonds"
	FieldFlaws             = "flaws"
)

func applyFifth(a *dnd5e.Adventurer, cat Catalog, e Edit) error {
	switch e.Field {
	case FieldName:
		a.Name = e.Value
	case FieldPlayer:
		a.Player = e.Value
	case FieldAlignment:
		a.Alignment = e.Value
	case FieldPersonality:
		a.PersonalityTraits = e.Value
	case FieldIdeals:
		a.Ideals = e.Value
	case FieldBonds:
		a.Bonds = e.Value
	case FieldFlaws:
		a.Flaws = e.Value

	case FieldAbility:
		name, err := dnd5e.ParseAbilityName(e.Key)
		if err != nil {
			return invalid(e, "%v", err)
		}
		score, err := intValue(e)
		if err != nil {
			return err
		}
		if err := a.SetAbilityScore(name, score); err != nil {
			return invalid(e, "%v", err)
		}

	case FieldSavingThrow:
		name, err := dnd5e.ParseAbilityName(e.Key)
		if err != nil {
			return invalid(e, "%v", err)
		}
		p, err := dnd5e.ParseProficiency(e.Value)
		if err != nil {
			return invalid(e, "%v", err)
		}
		ab := a.Ability(name)
		if ab == nil {
			return invalid(e, "sheet has no %s", name)
		}
		ab.SavingThrow = p

	case FieldSkill:
		p, err := dnd5e.ParseProficiency(e.Value)
		if err != nil {
			return invalid(e, "%v", err)
		}
		_, skill := a.Skill(e.Key)
		if skill == nil {
			return invalid(e, "unknown skill %q", e.Key)
		}
		skill.Proficiency = p

	case FieldRace:
		if e.Value == "" {
			a.AttachRace(nil)
			return nil
		}
		r, err := lookup[dnd5e.Race](cat, a, metadata.Races, e.Value)
		if err != nil {
			return err
		}
		a.AttachRace(&r)

	case FieldBackground:
		if e.Value == "" {
			a.AttachBackground(nil)
			return nil
		}
		b, err := lookup[dnd5e.Background](cat, a, metadata.Backgrounds, e.Value)
		if err != nil {
			return err
		}
		a.AttachBackground(&b)

	case FieldClass:
		if err := requireKey(e); err != nil {
			return err
		}
		level, err := intValue(e)
		if err != nil {
			return err
		}
		if level <= 0 {
			a.SetClassLevel(dnd5e.Class{Name: e.Key}, 0)
			return nil
		}
		c, err := lookup[dnd5e.Class](cat, a, metadata.Classes, e.Key)
		if err != nil {
			return err
		}
		a.SetClassLevel(c, level)

	case FieldItemAdd:
		it, err := lookup[dnd5e.Item](cat, a, metadata.Items, e.Value)
		if err != nil {
			return err
		}
		a.AddItem(it)
	case FieldItemRemove:
		if err := a.RemoveItem(e.Value); err != nil {
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
	case FieldItemEquip:
		if err := requireKey(e); err != nil {
			return err
		}
		on, err := boolValue(e)
		if err != nil {
			return err
		}
		if err := a.EquipItem(e.Key, on); err != nil {
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}

	case FieldHPCurrent, FieldHPMax, FieldHPTemp:
		n, err := intValue(e)
		if err != nil {
			return err
		}
		switch e.Field {
		case FieldHPCurrent:
			a.HP.Current = n
		case FieldHPMax:
			if n < 0 {
				return invalid(e, "maximum hit points must be >= 0")
			}
			a.HP.Max = n
		default:
			if n < 0 {
				return invalid(e, "temporary hit points must be >= 0")
			}
			a.HP.Temp = n
		}

	case FieldCoins:
		n, err := intValue(e)
		if err != nil {
			return err
		}
		if n < 0 {
			return invalid(e, "coins must be >= 0")
		}
		switch strings.ToLower(e.Key) {
		case "cp", "copper":
			a.CoinPurse.Copper = n
		case "sp", "silver":
			a.CoinPurse.Silver = n
		case "ep", "electrum":
			a.CoinPurse.Electrum = n
		case "gp", "gold":
			a.CoinPurse.Gold = n
		case "pp", "platinum":
			a.CoinPurse.Platinum = n
		default:
			return invalid(e, "unknown denomination %q", e.Key)
		}

	case FieldInspiration:
		b, err := boolValue(e)
		if err != nil {
			return err
		}
		a.Inspiration = b
	case FieldBardicInspiration:
		b, err := boolValue(e)
		if err != nil {
			return err
		}
		a.BardicInspiration = b
	case FieldBardicDie:
		if e.Value == "" {
			a.BardicInspirationDie = nil
			return nil
		}
		d, err := dice.ParseDie(e.Value)
		if err != nil {
			return invalid(e, "%v", err)
		}
		a.BardicInspirationDie = &d

	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, e.Field)
	}
	return nil
}
