package dnd5e_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/ocsm/internal/game/bonus"
	"github.com/cory-johannsen/ocsm/internal/game/dice"
	"github.com/cory-johannsen/ocsm/internal/game/dnd5e"
	"github.com/cory-johannsen/ocsm/internal/game/gamesystem"
)

func TestBaseAbilities_SixAbilitiesEighteenSkills(t *testing.T) {
	abs := dnd5e.BaseAbilities()
	require.Len(t, abs, 6)
	skills := 0
	for i, ab := range abs {
		assert.Equal(t, dnd5e.AbilityNames()[i], ab.Name)
		assert.Equal(t, 10, ab.Score)
		for _, s := range ab.Skills {
			assert.Equal(t, ab.Name, s.Ability)
		}
		skills += len(ab.Skills)
	}
	assert.Equal(t, 18, skills)
}

func TestNewAdventurer_Defaults(t *testing.T) {
	a := dnd5e.NewAdventurer()
	assert.Equal(t, gamesystem.Fifth, a.GameSystem)
	assert.Equal(t, gamesystem.Fifth, a.System())
	assert.Equal(t, "New Adventurer", a.DisplayName())
	assert.Nil(t, a.Race)
	assert.Nil(t, a.Background)
	assert.NotNil(t, a.Inventory)
}

func TestAdventurer_Skill_Lookup(t *testing.T) {
	a := dnd5e.NewAdventurer()
	ab, s := a.Skill("Perception")
	require.NotNil(t, s)
	assert.Equal(t, dnd5e.Wisdom, ab.Name)
	s.Proficiency = dnd5e.Expertise
	_, again := a.Skill("Perception")
	assert.Equal(t, dnd5e.Expertise, again.Proficiency)

	ab, s = a.Skill("Basket Weaving")
	assert.Nil(t, ab)
	assert.Nil(t, s)
}

func TestAdventurer_SetAbilityScore_Errors(t *testing.T) {
	a := dnd5e.NewAdventurer()
	assert.Error(t, a.SetAbilityScore("Luck", 10))
	assert.Error(t, a.SetAbilityScore(dnd5e.Strength, -1))
}

func TestAdventurer_Inventory(t *testing.T) {
	a := dnd5e.NewAdventurer()
	a.AddItem(dnd5e.Item{Name: "Rope", Kind: dnd5e.KindGear, Equipped: true})
	assert.False(t, a.Inventory[0].Equipped, "added items start unequipped")
	require.NoError(t, a.EquipItem("Rope", true))
	assert.True(t, a.Inventory[0].Equipped)
	assert.ErrorIs(t, a.EquipItem("Lantern", true), dnd5e.ErrItemNotFound)
	require.NoError(t, a.RemoveItem("Rope"))
	assert.Empty(t, a.Inventory)
	assert.ErrorIs(t, a.RemoveItem("Rope"), dnd5e.ErrItemNotFound)
}

func TestAdventurer_SetClassLevel(t *testing.T) {
	a := dnd5e.NewAdventurer()
	fighter := dnd5e.Class{Name: "Fighter", HitDie: dice.D10}
	a.SetClassLevel(fighter, 3)
	a.SetClassLevel(dnd5e.Class{Name: "Rogue", HitDie: dice.D8}, 2)
	assert.Equal(t, 5, a.TotalLevel())
	a.SetClassLevel(fighter, 4)
	assert.Equal(t, 6, a.TotalLevel())
	a.SetClassLevel(fighter, 0)
	require.Len(t, a.Classes, 1)
	assert.Equal(t, "Rogue", a.Classes[0].Class.Name)
}

func TestAdventurer_JSONRoundTrip(t *testing.T) {
	a := dnd5e.NewAdventurer()
	a.Name = "Vex"
	a.Player = "Sam"
	a.AttachRace(&dnd5e.Race{Name: "Elf", Features: []bonus.Feature{{
		Name: "Fleet", NumericBonuses: []bonus.NumericBonus{{Stat: bonus.Speed, Value: 35, Mode: bonus.Set}},
	}}})
	a.AddItem(dnd5e.Item{Name: "Leather", Kind: dnd5e.KindArmor, Armor: &dnd5e.ArmorProperties{BaseArmorClass: 11, AllowDexterityBonus: true}})
	a.CoinPurse.Gold = 12
	d := dice.D8
	a.BardicInspirationDie = &d

	data, err := json.Marshal(a)
	require.NoError(t, err)
	var back dnd5e.Adventurer
	require.NoError(t, json.Unmarshal(data, &back))
	if diff := cmp.Diff(a, &back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestItem_Validate(t *testing.T) {
	assert.NoError(t, dnd5e.Item{Name: "Rope", Kind: dnd5e.KindGear}.Validate())
	assert.ErrorContains(t, dnd5e.Item{Kind: dnd5e.KindGear}.Validate(), "name")
	assert.ErrorContains(t, dnd5e.Item{Name: "x", Kind: "food"}.Validate(), "kind")
	assert.ErrorContains(t, dnd5e.Item{Name: "x", Kind: dnd5e.KindArmor}.Validate(), "armor properties")
	assert.ErrorContains(t, dnd5e.Item{Name: "x", Kind: dnd5e.KindGear, Armor: &dnd5e.ArmorProperties{}}.Validate(), "only valid")
	assert.ErrorContains(t, dnd5e.Item{Name: "x", Kind: dnd5e.KindArmor, Armor: &dnd5e.ArmorProperties{MinimumStrength: -1}}.Validate(), "minimumStrength")
}

func TestCoinPurse(t *testing.T) {
	p := dnd5e.CoinPurse{Copper: 5, Silver: 2, Gold: 3, Platinum: 1}
	assert.Equal(t, 5+20+300+1000, p.TotalCopper())
	assert.Equal(t, "1 pp, 3 gp, 2 sp, 5 cp", p.String())
	assert.Equal(t, "0 cp", dnd5e.CoinPurse{}.String())
}

func TestParseProficiency(t *testing.T) {
	p, err := dnd5e.ParseProficiency("")
	require.NoError(t, err)
	assert.Equal(t, dnd5e.NotProficient, p)
	p, err = dnd5e.ParseProficiency("expertise")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Multiplier())
	_, err = dnd5e.ParseProficiency("master")
	assert.Error(t, err)
}

func TestAdventurer_CloneIsDeep(t *testing.T) {
	a := dnd5e.NewAdventurer()
	a.AddItem(dnd5e.Item{Name: "Shield", Kind: dnd5e.KindArmor, Armor: &dnd5e.ArmorProperties{BaseArmorClass: 2}})
	a.AttachRace(&dnd5e.Race{Name: "Elf"})
	cp := a.Clone()
	require.NoError(t, cp.SetAbilityScore(dnd5e.Strength, 18))
	_, s := cp.Skill("Athletics")
	s.Proficiency = dnd5e.Proficient
	cp.Inventory[0].Armor.BaseArmorClass = 5
	cp.Race.Name = "Orc"

	assert.Equal(t, 10, a.Score(dnd5e.Strength))
	_, orig := a.Skill("Athletics")
	assert.Equal(t, dnd5e.NotProficient, orig.Proficiency)
	assert.Equal(t, 2, a.Inventory[0].Armor.BaseArmorClass)
	assert.Equal(t, "Elf", a.Race.Name)
}
