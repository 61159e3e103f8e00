package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresvaldez/despacho/internal/domain"
	"github.com/andresvaldez/despacho/internal/testutil"
)

func TestExpenseRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteExpenseRepo(db)
	ctx := context.Background()

	date := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	exp := testutil.NewTestExpense("Cemento", testutil.WithExpenseDate(date), testutil.WithExpenseAmount(1250.75))
	require.NoError(t, repo.Create(ctx, exp))

	fetched, err := repo.GetByID(ctx, exp.ID)
	require.NoError(t, err)
	assert.Equal(t, exp.ID, fetched.ID)
	assert.Equal(t, "Cemento", fetched.Concept)
	assert.Equal(t, 1250.75, fetched.Amount)
	assert.True(t, fetched.Date.Equal(date))
	assert.Empty(t, fetched.SupplierID)
	assert.Empty(t, fetched.ProjectID)
}

func TestExpenseRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteExpenseRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpenseRepo_List_Filters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteExpenseRepo(db)
	supplierRepo := NewSQLiteSupplierRepo(db)
	ctx := context.Background()

	sup1 := testutil.NewTestSupplier("Ferretería Norte")
	sup2 := testutil.NewTestSupplier("Eléctrica Sur")
	require.NoError(t, supplierRepo.Create(ctx, sup1))
	require.NoError(t, supplierRepo.Create(ctx, sup2))

	jan := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, testutil.NewTestExpense("Cemento gris",
		testutil.WithExpenseDate(jan), testutil.WithExpenseSupplier(sup1.ID), testutil.WithExpenseAmount(500))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestExpense("Cable calibre 12",
		testutil.WithExpenseDate(feb), testutil.WithExpenseSupplier(sup2.ID), testutil.WithExpenseAmount(1500))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestExpense("Cemento blanco",
		testutil.WithExpenseDate(mar), testutil.WithExpenseSupplier(sup1.ID), testutil.WithExpenseAmount(3000))))

	page := domain.Page{Page: 1, Limit: 10}

	t.Run("by concept substring", func(t *testing.T) {
		res, err := repo.List(ctx, domain.ExpenseFilters{Page: page, Concept: "cemento"})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Len(t, res.Data, 2)
	})

	t.Run("by supplier set", func(t *testing.T) {
		res, err := repo.List(ctx, domain.ExpenseFilters{Page: page, SupplierIDs: []string{sup2.ID}})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Equal(t, "Cable calibre 12", res.Data[0].Concept)
	})

	t.Run("by date range", func(t *testing.T) {
		from := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC)
		res, err := repo.List(ctx, domain.ExpenseFilters{Page: page, DateFrom: &from, DateTo: &to})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Equal(t, "Cable calibre 12", res.Data[0].Concept)
	})

	t.Run("by amount range", func(t *testing.T) {
		min := 1000.0
		max := 2000.0
		res, err := repo.List(ctx, domain.ExpenseFilters{Page: page, AmountMin: &min, AmountMax: &max})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
	})

	t.Run("combined filters", func(t *testing.T) {
		res, err := repo.List(ctx, domain.ExpenseFilters{
			Page: page, Concept: "cemento", SupplierIDs: []string{sup1.ID, sup2.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
	})
}

func TestExpenseRepo_List_PaginationAndOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteExpenseRepo(db)
	ctx := context.Background()

	base := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		exp := testutil.NewTestExpense("Gasto", testutil.WithExpenseDate(base.AddDate(0, 0, i)))
		require.NoError(t, repo.Create(ctx, exp))
	}

	res, err := repo.List(ctx, domain.ExpenseFilters{Page: domain.Page{Page: 1, Limit: 5}})
	require.NoError(t, err)
	assert.Equal(t, 7, res.Total)
	require.Len(t, res.Data, 5)
	// Most recent date first.
	assert.True(t, res.Data[0].Date.After(res.Data[4].Date))

	res2, err := repo.List(ctx, domain.ExpenseFilters{Page: domain.Page{Page: 2, Limit: 5}})
	require.NoError(t, err)
	assert.Equal(t, 7, res2.Total)
	assert.Len(t, res2.Data, 2)
}

func TestExpenseRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteExpenseRepo(db)
	ctx := context.Background()

	exp := testutil.NewTestExpense("Original")
	require.NoError(t, repo.Create(ctx, exp))

	exp.Concept = "Corregido"
	exp.Amount = 999.99
	require.NoError(t, repo.Update(ctx, exp))

	fetched, err := repo.GetByID(ctx, exp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Corregido", fetched.Concept)
	assert.Equal(t, 999.99, fetched.Amount)
}

func TestExpenseRepo_Update_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteExpenseRepo(db)

	exp := testutil.NewTestExpense("Fantasma")
	err := repo.Update(context.Background(), exp)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpenseRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteExpenseRepo(db)
	ctx := context.Background()

	exp := testutil.NewTestExpense("Temporal")
	require.NoError(t, repo.Create(ctx, exp))
	require.NoError(t, repo.Delete(ctx, exp.ID))

	_, err := repo.GetByID(ctx, exp.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, exp.ID), ErrNotFound)
}
