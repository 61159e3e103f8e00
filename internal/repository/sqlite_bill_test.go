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

func TestBillRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBillRepo(db)
	projectRepo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Obra Uno")
	require.NoError(t, projectRepo.Create(ctx, proj))

	issued := time.Date(2026, time.May, 20, 0, 0, 0, 0, time.UTC)
	bill := testutil.NewTestBill("F-0042",
		testutil.WithBillProject(proj.ID),
		testutil.WithBillAmount(58000),
		testutil.WithBillIssuedAt(issued))
	require.NoError(t, repo.Create(ctx, bill))

	fetched, err := repo.GetByID(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, "F-0042", fetched.Folio)
	assert.Equal(t, proj.ID, fetched.ProjectID)
	assert.Equal(t, 58000.0, fetched.Amount)
	assert.Equal(t, domain.BillPending, fetched.Status)
	assert.True(t, fetched.IssuedAt.Equal(issued))
}

func TestBillRepo_List_Filters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBillRepo(db)
	projectRepo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Obra Dos")
	require.NoError(t, projectRepo.Create(ctx, proj))

	mar := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, testutil.NewTestBill("A-100",
		testutil.WithBillProject(proj.ID), testutil.WithBillIssuedAt(mar))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestBill("A-101",
		testutil.WithBillIssuedAt(mar.AddDate(0, 1, 0)), testutil.WithBillStatus(domain.BillPaid))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestBill("B-200",
		testutil.WithBillIssuedAt(mar.AddDate(0, 2, 0)), testutil.WithBillStatus(domain.BillOverdue))))

	page := domain.Page{Page: 1, Limit: 10}

	t.Run("by folio", func(t *testing.T) {
		res, err := repo.List(ctx, domain.BillFilters{Page: page, Folio: "a-1"})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
	})

	t.Run("by project", func(t *testing.T) {
		res, err := repo.List(ctx, domain.BillFilters{Page: page, ProjectID: proj.ID})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Equal(t, "A-100", res.Data[0].Folio)
	})

	t.Run("by status", func(t *testing.T) {
		res, err := repo.List(ctx, domain.BillFilters{Page: page, Status: domain.BillOverdue})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Equal(t, "B-200", res.Data[0].Folio)
	})

	t.Run("by issued window", func(t *testing.T) {
		from := mar.AddDate(0, 0, 15)
		to := mar.AddDate(0, 1, 15)
		res, err := repo.List(ctx, domain.BillFilters{Page: page, IssuedFrom: &from, IssuedTo: &to})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Equal(t, "A-101", res.Data[0].Folio)
	})
}

func TestBillRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBillRepo(db)
	ctx := context.Background()

	bill := testutil.NewTestBill("F-0001")
	require.NoError(t, repo.Create(ctx, bill))

	bill.Status = domain.BillPaid
	bill.Amount = 777
	require.NoError(t, repo.Update(ctx, bill))

	fetched, err := repo.GetByID(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BillPaid, fetched.Status)
	assert.Equal(t, 777.0, fetched.Amount)

	require.NoError(t, repo.Delete(ctx, bill.ID))
	_, err = repo.GetByID(ctx, bill.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
