package sheet_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/ocsm/internal/game/cofd"
	"github.com/cory-johannsen/ocsm/internal/game/dnd5e"
	"github.com/cory-johannsen/ocsm/internal/game/gamesystem"
	"github.com/cory-johannsen/ocsm/internal/sheet"
)

func named(name string) *dnd5e.Adventurer {
	a := dnd5e.NewAdventurer()
	a.Name = name
	return a
}

func TestManager_OpenDedupesNames(t *testing.T) {
	m := sheet.NewManager(nil, zaptest.NewLogger(t))
	first, err := m.Open(named("Vex"))
	require.NoError(t, err)
	second, err := m.Open(named("Vex"))
	require.NoError(t, err)
	third, err := m.Open(named("Vex"))
	require.NoError(t, err)
	other, err := m.Open(named("Pike"))
	require.NoError(t, err)

	assert.Equal(t, "Vex", first.Name)
	assert.Equal(t, "Vex (1)", second.Name)
	assert.Equal(t, "Vex (2)", third.Name)
	assert.Equal(t, "Pike", other.Name)
	assert.NotEqual(t, first.ID, second.ID)

	require.NoError(t, m.Close(second.ID))
	fourth, err := m.Open(named("Vex"))
	require.NoError(t, err)
	assert.Equal(t, "Vex (3)", fourth.Name)
}

func TestManager_GetListClose(t *testing.T) {
	m := sheet.NewManager(nil, nil)
	a, err := m.Open(named("A"))
	require.NoError(t, err)
	b, err := m.Open(cofd.NewMortal())
	require.NoError(t, err)

	got, ok := m.Get(b.ID)
	require.True(t, ok)
	assert.Same(t, b, got)

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, "New Character", list[1].Name)

	require.NoError(t, m.Close(a.ID))
	assert.ErrorIs(t, m.Close(a.ID), sheet.ErrNotFound)
	assert.ErrorIs(t, m.Close(uuid.New()), sheet.ErrNotFound)
	_, ok = m.Get(a.ID)
	assert.False(t, ok)
	assert.Len(t, m.List(), 1)
}

func TestManager_LoadDocumentSelectsGameSystem(t *testing.T) {
	cat := newCatalog(t, gamesystem.None)
	m := sheet.NewManager(cat, zaptest.NewLogger(t))
	doc := []byte(`{"gameSystem":"DnD.Fifth","character":{"name":"Vex","gameSystem":"DnD.Fifth"}}`)

	opened, err := m.LoadDocument(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "Vex", opened.Name)
	assert.Equal(t, []gamesystem.ID{gamesystem.Fifth}, cat.selected)

	_, err = opened.Session.ApplyEdit(sheet.Edit{Field: sheet.FieldRace, Value: "Human"})
	require.NoError(t, err)
	assert.Equal(t, 30, opened.Session.Traits().Fifth.Speed)
}

func TestManager_LoadDocumentUnknownOpensNothing(t *testing.T) {
	cat := newCatalog(t, gamesystem.None)
	m := sheet.NewManager(cat, nil)
	_, err := m.LoadDocument(context.Background(), []byte(`{"gameSystem":"WoD.Vampire","character":{}}`))
	assert.ErrorIs(t, err, sheet.ErrUnknownGameSystem)
	assert.Empty(t, m.List())
	assert.Empty(t, cat.selected)
}
