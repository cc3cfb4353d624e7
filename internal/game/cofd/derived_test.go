package cofd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/ocsm/internal/game/cofd"
)

func TestNewCore_DefaultAdvantages(t *testing.T) {
	c := cofd.NewCore()
	traits := cofd.Calculate(&c)
	assert.Equal(t, cofd.Traits{
		Defense: 1, Initiative: 2, Speed: 7, Size: 5, HealthMax: 6, WillpowerMax: 2,
	}, traits)
	assert.Equal(t, 6, c.Health.Max)
	assert.Equal(t, 2, c.Willpower.Max)
	assert.Equal(t, 5, c.Beats.Max)
}

func TestDefense_UsesLowerOfDexterityAndWits(t *testing.T) {
	c := cofd.NewCore()
	require.NoError(t, c.SetAttribute(cofd.Dexterity, 4))
	require.NoError(t, c.SetAttribute(cofd.Wits, 2))
	require.NoError(t, c.SetSkill(cofd.Athletics, 3))
	assert.Equal(t, 5, cofd.Defense(&c))
	require.NoError(t, c.SetAttribute(cofd.Wits, 5))
	assert.Equal(t, 7, cofd.Defense(&c))
}

func TestSetAttribute_ResizesTrackers(t *testing.T) {
	c := cofd.NewCore()
	require.NoError(t, c.SetAttribute(cofd.Stamina, 3))
	require.NoError(t, c.SetAttribute(cofd.Resolve, 3))
	require.NoError(t, c.SetAttribute(cofd.Composure, 4))
	assert.Equal(t, 8, c.Health.Max)
	assert.Equal(t, 7, c.Willpower.Max)
	assert.Error(t, c.SetAttribute(cofd.Stamina, 6))
	assert.Equal(t, 3, c.Attribute(cofd.Stamina))
}

func TestSetSize_Clamps(t *testing.T) {
	c := cofd.NewCore()
	c.SetSize(0)
	assert.Equal(t, 1, c.Size)
	assert.Equal(t, 2, c.Health.Max)
	c.SetSize(42)
	assert.Equal(t, 10, c.Size)
	assert.Equal(t, 11, c.Health.Max)
}

func TestSetMerit(t *testing.T) {
	c := cofd.NewCore()
	require.NoError(t, c.SetMerit(cofd.Merit{Name: "Resources"}, 2))
	require.Len(t, c.Merits, 1)
	assert.Equal(t, 2, c.Merits[0].Dots)
	require.NoError(t, c.SetMerit(cofd.Merit{Name: "Resources"}, 3))
	assert.Equal(t, 3, c.Merits[0].Dots)
	require.NoError(t, c.SetMerit(cofd.Merit{Name: "Resources"}, 0))
	assert.Empty(t, c.Merits)
	assert.Error(t, c.SetMerit(cofd.Merit{Name: "Resources"}, 9))
}

func TestChangeling_DerivedTrackers(t *testing.T) {
	ch := cofd.NewChangeling()
	assert.Equal(t, 2, ch.Clarity.Max)
	assert.Equal(t, 10, ch.Glamour.Max)
	require.NoError(t, ch.SetWyrd(5))
	assert.Equal(t, 15, ch.Glamour.Max)
	require.NoError(t, ch.SetAttribute(cofd.Wits, 3))
	assert.Equal(t, 4, ch.Clarity.Max)
	assert.Error(t, ch.SetWyrd(0))

	traits := cofd.CalculateChangeling(ch)
	assert.Equal(t, 4, traits.ClarityMax)
	assert.Equal(t, 15, traits.GlamourMax)
}

func TestGlamourMax_ClampsWyrd(t *testing.T) {
	assert.Equal(t, 10, cofd.GlamourMax(0))
	assert.Equal(t, 75, cofd.GlamourMax(10))
	assert.Equal(t, 75, cofd.GlamourMax(99))
}

func TestChangeling_AttachCopies(t *testing.T) {
	ch := cofd.NewChangeling()
	s := &cofd.Seeming{Name: "Beast", Regalia: "Steed"}
	ch.AttachSeeming(s)
	s.Regalia = "Crown"
	assert.Equal(t, "Steed", ch.Seeming.Regalia)
	ch.AttachSeeming(nil)
	assert.Nil(t, ch.Seeming)
}

func TestChangeling_CloneIsDeep(t *testing.T) {
	ch := cofd.NewChangeling()
	ch.AttachCourt(&cofd.Court{Name: "Spring"})
	require.NoError(t, ch.SetSkill(cofd.Occult, 2))
	cp := ch.Clone()
	require.NoError(t, cp.SetSkill(cofd.Occult, 4))
	cp.Court.Name = "Winter"
	assert.Equal(t, 2, ch.Skill(cofd.Occult))
	assert.Equal(t, "Spring", ch.Court.Name)
}

func TestMortal_Defaults(t *testing.T) {
	m := cofd.NewMortal()
	assert.Equal(t, 7, m.Integrity)
	assert.Equal(t, "New Character", m.DisplayName())
	assert.Error(t, m.SetIntegrity(11))
	require.NoError(t, m.SetIntegrity(4))
	assert.Equal(t, 4, m.Integrity)
}

func TestProperty_Calculate_Formulas(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := cofd.NewCore()
		for _, a := range cofd.Attributes() {
			if err := c.SetAttribute(a, rapid.IntRange(0, 5).Draw(rt, string(a))); err != nil {
				rt.Fatal(err)
			}
		}
		if err := c.SetSkill(cofd.Athletics, rapid.IntRange(0, 5).Draw(rt, "athletics")); err != nil {
			rt.Fatal(err)
		}
		c.SetSize(rapid.IntRange(-3, 15).Draw(rt, "size"))

		got := cofd.Calculate(&c)
		assert.Equal(rt, got, cofd.Calculate(&c))
		assert.GreaterOrEqual(rt, got.Size, 1)
		assert.LessOrEqual(rt, got.Size, 10)
		assert.Equal(rt, min(c.Attribute(cofd.Dexterity), c.Attribute(cofd.Wits))+c.Skill(cofd.Athletics), got.Defense)
		assert.Equal(rt, c.Attribute(cofd.Dexterity)+c.Attribute(cofd.Composure), got.Initiative)
		assert.Equal(rt, got.Size+c.Attribute(cofd.Dexterity)+c.Attribute(cofd.Strength), got.Speed)
		assert.Equal(rt, got.Size+c.Attribute(cofd.Stamina), got.HealthMax)
		assert.Equal(rt, c.Health.Max, got.HealthMax)
	})
}
