package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresvaldez/despacho/internal/domain"
	"github.com/andresvaldez/despacho/internal/repository"
	"github.com/andresvaldez/despacho/internal/testutil"
)

func TestExpenseService_Create_AssignsID(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewExpenseService(repository.NewSQLiteExpenseRepo(db))
	ctx := context.Background()

	exp := &domain.Expense{
		Concept: "Renta de maquinaria",
		Date:    time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC),
		Amount:  4500,
	}
	require.NoError(t, svc.Create(ctx, exp))
	assert.NotEmpty(t, exp.ID)

	fetched, err := svc.GetByID(ctx, exp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renta de maquinaria", fetched.Concept)
}

func TestExpenseService_Create_Validation(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewExpenseService(repository.NewSQLiteExpenseRepo(db))
	ctx := context.Background()
	date := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expense domain.Expense
		wantErr string
	}{
		{"empty concept", domain.Expense{Date: date}, "concept"},
		{"negative amount", domain.Expense{Concept: "x", Date: date, Amount: -1}, "negative"},
		{"missing date", domain.Expense{Concept: "x"}, "date"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Create(ctx, &tc.expense)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestExpenseService_List_DefaultsPagination(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewExpenseService(repository.NewSQLiteExpenseRepo(db))
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		require.NoError(t, svc.Create(ctx, &domain.Expense{
			Concept: "Gasto",
			Date:    time.Date(2026, time.July, 1+i, 0, 0, 0, 0, time.UTC),
		}))
	}

	res, err := svc.List(ctx, domain.ExpenseFilters{})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Total)
	assert.Len(t, res.Data, domain.DefaultPage().Limit)
}
