package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/ocsm/internal/storage/postgres"
	"github.com/cory-johannsen/ocsm/internal/testutil"
)

func TestMetadataStore_ReadMissing(t *testing.T) {
	store := postgres.NewMetadataStore(testutil.NewPool(t))

	data, err := store.Read(context.Background(), "CoD.Changeling.ocmd")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestMetadataStore_WriteThenRead(t *testing.T) {
	store := postgres.NewMetadataStore(testutil.NewPool(t))
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "CoD.Changeling.ocmd", []byte(`{"merits":[]}`)))
	require.NoError(t, store.Write(ctx, "CoD.Changeling.ocmd", []byte(`{"merits":[{"name":"Resources"}]}`)))
	require.NoError(t, store.Write(ctx, "DnD.Fifth.ocmd", []byte(`{}`)))

	data, err := store.Read(ctx, "CoD.Changeling.ocmd")
	require.NoError(t, err)
	assert.Equal(t, `{"merits":[{"name":"Resources"}]}`, string(data))

	names, err := store.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"CoD.Changeling.ocmd", "DnD.Fifth.ocmd"}, names)
}
