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

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	clientRepo := NewSQLiteClientRepo(db)
	ctx := context.Background()

	client := testutil.NewTestClient("Constructora Mar")
	require.NoError(t, clientRepo.Create(ctx, client))

	start := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	proj := testutil.NewTestProject("Plaza Norte",
		testutil.WithProjectClient(client.ID),
		testutil.WithProjectDates(start, end))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plaza Norte", fetched.Name)
	assert.Equal(t, client.ID, fetched.ClientID)
	assert.Equal(t, domain.ProjectActive, fetched.Status)
	require.NotNil(t, fetched.StartDate)
	require.NotNil(t, fetched.EndDate)
	assert.True(t, fetched.StartDate.Equal(start))
	assert.True(t, fetched.EndDate.Equal(end))
}

func TestProjectRepo_CreateWithoutDates(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Sin fechas")
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.StartDate)
	assert.Nil(t, fetched.EndDate)
	assert.Empty(t, fetched.ClientID)
}

func TestProjectRepo_List_Filters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	jan := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("Bodega Sur",
		testutil.WithProjectDates(jan, jan.AddDate(0, 6, 0)))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("Bodega Oriente",
		testutil.WithProjectDates(jun, jun.AddDate(0, 6, 0)),
		testutil.WithProjectStatus(domain.ProjectPaused))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("Oficinas Centro",
		testutil.WithProjectStatus(domain.ProjectFinished))))

	page := domain.Page{Page: 1, Limit: 10}

	t.Run("by name", func(t *testing.T) {
		res, err := repo.List(ctx, domain.ProjectFilters{Page: page, Name: "bodega"})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
	})

	t.Run("by status", func(t *testing.T) {
		res, err := repo.List(ctx, domain.ProjectFilters{Page: page, Status: domain.ProjectPaused})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Equal(t, "Bodega Oriente", res.Data[0].Name)
	})

	t.Run("by start window", func(t *testing.T) {
		from := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
		res, err := repo.List(ctx, domain.ProjectFilters{Page: page, StartFrom: &from})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Equal(t, "Bodega Oriente", res.Data[0].Name)
	})
}

func TestProjectRepo_Update_Status(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("En curso")
	require.NoError(t, repo.Create(ctx, proj))

	proj.Status = domain.ProjectCancelled
	require.NoError(t, repo.Update(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectCancelled, fetched.Status)
}

func TestProjectRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Borrable")
	require.NoError(t, repo.Create(ctx, proj))
	require.NoError(t, repo.Delete(ctx, proj.ID))

	_, err := repo.GetByID(ctx, proj.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
