package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/ocsm/internal/storage/postgres"
	"github.com/cory-johannsen/ocsm/internal/testutil"
)

const mortalSnapshot = `{"gameSystem":"CoD.Mortal","character":{"gameSystem":"CoD.Mortal","name":"Ada"}}`

func TestSheetRepository_SaveAssignsID(t *testing.T) {
	repo := postgres.NewSheetRepository(testutil.NewPool(t))

	rec, err := repo.Save(context.Background(), postgres.SheetRecord{
		Name:       "Ada",
		GameSystem: "CoD.Mortal",
		Data:       []byte(mortalSnapshot),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := repo.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "CoD.Mortal", got.GameSystem)
	assert.JSONEq(t, mortalSnapshot, string(got.Data))
}

func TestSheetRepository_SaveReplaces(t *testing.T) {
	repo := postgres.NewSheetRepository(testutil.NewPool(t))
	ctx := context.Background()

	rec, err := repo.Save(ctx, postgres.SheetRecord{Name: "Ada", GameSystem: "CoD.Mortal", Data: []byte(mortalSnapshot)})
	require.NoError(t, err)

	rec.Name = "Ada (1)"
	_, err = repo.Save(ctx, rec)
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ada (1)", list[0].Name)
	assert.Nil(t, list[0].Data)
}

func TestSheetRepository_EmptyData(t *testing.T) {
	repo := postgres.NewSheetRepository(testutil.NewPool(t))
	_, err := repo.Save(context.Background(), postgres.SheetRecord{Name: "Ada"})
	assert.ErrorIs(t, err, postgres.ErrEmptySheet)
}

func TestSheetRepository_NotFound(t *testing.T) {
	repo := postgres.NewSheetRepository(testutil.NewPool(t))
	ctx := context.Background()

	_, err := repo.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, postgres.ErrSheetNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), postgres.ErrSheetNotFound)
}

func TestSheetRepository_Delete(t *testing.T) {
	repo := postgres.NewSheetRepository(testutil.NewPool(t))
	ctx := context.Background()

	rec, err := repo.Save(ctx, postgres.SheetRecord{Name: "Ada", GameSystem: "CoD.Mortal", Data: []byte(mortalSnapshot)})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, rec.ID))

	_, err = repo.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, postgres.ErrSheetNotFound)
}
