package dnd5e

import (
	"errors"
	"fmt"
)

// ItemKind classifies inventory entries.
type ItemKind string

// Item kinds.
const (
	KindGear   ItemKind = "gear"
	KindArmor  ItemKind = "armor"
	KindWeapon ItemKind = "weapon"
)

// ArmorProperties carries the armor-class rules of a piece of armor.
type ArmorProperties struct {
	BaseArmorClass      int  `json:"baseArmorClass"`
	AllowDexterityBonus bool `json:"allowDexterityBonus"`
	LimitDexterityBonus bool `json:"limitDexterityBonus"`
	DexterityBonusLimit int  `json:"dexterityBonusLimit"`
	MinimumStrength     int  `json:"minimumStrength"`
	StealthDisadvantage bool `json:"stealthDisadvantage,omitempty"`
}

// Item is an inventory entry. An item of KindArmor with non-nil Armor is an armor item.
type Item struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Kind        ItemKind         `json:"kind"`
	Equipped    bool             `json:"equipped"`
	Weight      float64          `json:"weight,omitempty"`
	Value       int              `json:"value,omitempty"` // in copper pieces
	Armor       *ArmorProperties `json:"armor,omitempty"`
}

// IsArmor reports whether the item carries armor properties.
func (i Item) IsArmor() bool {
	return i.Kind == KindArmor && i.Armor != nil
}

// Clone returns a deep copy of i.
func (i Item) Clone() Item {
	out := i
	if i.Armor != nil {
		a := *i.Armor
		out.Armor = &a
	}
	return out
}

// Validate reports an error if the item is missing required fields or has illegal values.
//
// Postcondition: Returns nil iff the item is well-formed.
func (i Item) Validate() error {
	var errs []error
	if i.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	switch i.Kind {
	case KindGear, KindWeapon:
		if i.Armor != nil {
			errs = append(errs, fmt.Errorf("armor properties are only valid on kind %q", KindArmor))
		}
	case KindArmor:
		if i.Armor == nil {
			errs = append(errs, errors.New("armor items must carry armor properties"))
		} else {
			if i.Armor.BaseArmorClass < 0 {
				errs = append(errs, errors.New("baseArmorClass must be >= 0"))
			}
			if i.Armor.LimitDexterityBonus && i.Armor.DexterityBonusLimit < 0 {
				errs = append(errs, errors.New("dexterityBonusLimit must be >= 0"))
			}
			if i.Armor.MinimumStrength < 0 {
				errs = append(errs, errors.New("minimumStrength must be >= 0"))
			}
		}
	default:
		errs = append(errs, fmt.Errorf("kind %q is not a valid item kind", i.Kind))
	}
	if i.Weight < 0 {
		errs = append(errs, errors.New("weight must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}
