package sheet_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/ocsm/internal/game/bonus"
	"github.com/cory-johannsen/ocsm/internal/game/cofd"
	"github.com/cory-johannsen/ocsm/internal/game/dice"
	"github.com/cory-johannsen/ocsm/internal/game/dnd5e"
	"github.com/cory-johannsen/ocsm/internal/game/gamesystem"
	"github.com/cory-johannsen/ocsm/internal/metadata"
)

// staticCatalog publishes fixed containers keyed by game system and records selections.
type staticCatalog struct {
	containers map[gamesystem.ID]metadata.Container
	current    gamesystem.ID
	selected   []gamesystem.ID
}

func (c *staticCatalog) Current() metadata.State {
	return metadata.State{System: c.current, Container: c.containers[c.current]}
}

func (c *staticCatalog) Select(_ context.Context, id gamesystem.ID) error {
	c.current = id
	c.selected = append(c.selected, id)
	return nil
}

func newCatalog(t *testing.T, current gamesystem.ID) *staticCatalog {
	t.Helper()
	fifth := metadata.NewFifthContainer()
	require.NoError(t, fifth.Put(dnd5e.Race{Name: "Human", Features: []bonus.Feature{{
		Name: "Speed", NumericBonuses: []bonus.NumericBonus{{Stat: bonus.Speed, Value: 30, Mode: bonus.Set}},
	}}}))
	require.NoError(t, fifth.Put(dnd5e.Race{Name: "Tortle", Features: []bonus.Feature{
		{Name: "Speed", NumericBonuses: []bonus.NumericBonus{{Stat: bonus.Speed, Value: 30, Mode: bonus.Set}}},
		{Name: "Natural Armor", NumericBonuses: []bonus.NumericBonus{{Stat: bonus.ArmorClass, Value: 17, Mode: bonus.Set}}},
	}}))
	require.NoError(t, fifth.Put(dnd5e.Background{Name: "Sentinel", Features: []bonus.Feature{{
		Name: "Watchful", NumericBonuses: []bonus.NumericBonus{{Stat: bonus.Initiative, Value: 2, Mode: bonus.Add}},
	}}}))
	require.NoError(t, fifth.Put(dnd5e.Class{Name: "Fighter", HitDie: dice.D10}))
	require.NoError(t, fifth.Put(dnd5e.Item{Name: "Chain Mail", Kind: dnd5e.KindArmor,
		Armor: &dnd5e.ArmorProperties{BaseArmorClass: 16, MinimumStrength: 13}}))
	require.NoError(t, fifth.Put(dnd5e.Item{Name: "Scale Mail", Kind: dnd5e.KindArmor,
		Armor: &dnd5e.ArmorProperties{BaseArmorClass: 14, AllowDexterityBonus: true, LimitDexterityBonus: true, DexterityBonusLimit: 2}}))

	ctl, err := metadata.DefaultChangeling()
	require.NoError(t, err)
	require.NoError(t, ctl.Put(cofd.Kith{Name: "Runnerswift"}))
	require.NoError(t, ctl.Put(cofd.Merit{Name: "Mantle"}))

	mortal := metadata.NewCoreContainer()
	require.NoError(t, mortal.Put(cofd.Merit{Name: "Resources"}))

	return &staticCatalog{
		current: current,
		containers: map[gamesystem.ID]metadata.Container{
			gamesystem.Fifth:      fifth,
			gamesystem.Changeling: ctl,
			gamesystem.Mortal:     mortal,
		},
	}
}

func itoa(n int) string { return strconv.Itoa(n) }
