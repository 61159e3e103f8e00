package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresvaldez/despacho/internal/testutil"
)

func TestCatalogRepo_Suppliers_TermSearch(t *testing.T) {
	db := testutil.NewTestDB(t)
	catalog := NewSQLiteCatalogRepo(db)
	supplierRepo := NewSQLiteSupplierRepo(db)
	ctx := context.Background()

	require.NoError(t, supplierRepo.Create(ctx, testutil.NewTestSupplier("Aceros Monterrey")))
	require.NoError(t, supplierRepo.Create(ctx, testutil.NewTestSupplier("Aceros del Norte")))
	require.NoError(t, supplierRepo.Create(ctx, testutil.NewTestSupplier("Pinturas Lux")))

	hits, err := catalog.Suppliers(ctx, "aceros")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "Aceros Monterrey", hits[0].Name)
	assert.NotEmpty(t, hits[0].ID)

	all, err := catalog.Suppliers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := catalog.Suppliers(ctx, "inexistente")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCatalogRepo_UpsertArea(t *testing.T) {
	db := testutil.NewTestDB(t)
	catalog := NewSQLiteCatalogRepo(db)
	ctx := context.Background()

	require.NoError(t, catalog.UpsertArea(ctx, testutil.NewTestArea("a1", "Eléctrico")))
	require.NoError(t, catalog.UpsertArea(ctx, testutil.NewTestArea("a2", "Plomería")))

	areas, err := catalog.Areas(ctx)
	require.NoError(t, err)
	require.Len(t, areas, 2)

	// Same id again renames in place.
	require.NoError(t, catalog.UpsertArea(ctx, testutil.NewTestArea("a1", "Material eléctrico")))
	areas, err = catalog.Areas(ctx)
	require.NoError(t, err)
	require.Len(t, areas, 2)

	byID := map[string]string{}
	for _, a := range areas {
		byID[a.ID] = a.Name
	}
	assert.Equal(t, "Material eléctrico", byID["a1"])
}

func TestStateRepo_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	state := NewSQLiteStateRepo(db)
	ctx := context.Background()

	got, err := state.Get(ctx, "filters:expenses")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, state.Set(ctx, "filters:expenses", []byte(`{"page":3}`)))
	got, err = state.Get(ctx, "filters:expenses")
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":3}`, string(got))

	// Overwrite wins.
	require.NoError(t, state.Set(ctx, "filters:expenses", []byte(`{"page":1}`)))
	got, err = state.Get(ctx, "filters:expenses")
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":1}`, string(got))

	require.NoError(t, state.Remove(ctx, "filters:expenses"))
	got, err = state.Get(ctx, "filters:expenses")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Removing an absent key is not an error.
	require.NoError(t, state.Remove(ctx, "filters:expenses"))
}
