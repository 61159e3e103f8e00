package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresvaldez/despacho/internal/repository"
	"github.com/andresvaldez/despacho/internal/testutil"
)

type fakeSnapshot struct {
	Concept string `json:"concept,omitempty"`
	Page    int    `json:"page,omitempty"`
}

func TestStateService_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewStateService(repository.NewSQLiteStateRepo(db), nil)
	ctx := context.Background()

	var out fakeSnapshot
	assert.False(t, svc.Load(ctx, "filters:expenses", &out))

	svc.Save(ctx, "filters:expenses", fakeSnapshot{Concept: "cemento", Page: 2})

	out = fakeSnapshot{}
	require.True(t, svc.Load(ctx, "filters:expenses", &out))
	assert.Equal(t, "cemento", out.Concept)
	assert.Equal(t, 2, out.Page)

	svc.Clear(ctx, "filters:expenses")
	out = fakeSnapshot{}
	assert.False(t, svc.Load(ctx, "filters:expenses", &out))
}

func TestStateService_Load_MalformedSnapshotReadsAsAbsent(t *testing.T) {
	db := testutil.NewTestDB(t)
	stateRepo := repository.NewSQLiteStateRepo(db)
	svc := NewStateService(stateRepo, nil)
	ctx := context.Background()

	require.NoError(t, stateRepo.Set(ctx, "filters:bills", []byte("{not json")))

	var out fakeSnapshot
	assert.False(t, svc.Load(ctx, "filters:bills", &out))
}

func TestStateService_KeysAreIndependent(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewStateService(repository.NewSQLiteStateRepo(db), nil)
	ctx := context.Background()

	svc.Save(ctx, "filters:expenses", fakeSnapshot{Page: 1})
	svc.Save(ctx, "filters:suppliers", fakeSnapshot{Page: 4})
	svc.Clear(ctx, "filters:expenses")

	var out fakeSnapshot
	require.True(t, svc.Load(ctx, "filters:suppliers", &out))
	assert.Equal(t, 4, out.Page)
}
