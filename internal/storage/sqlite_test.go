package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/core"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	added, err := s.AddTransaction(ctx, sampleTx("Food", 1234))
	require.NoError(t, err)
	assert.Equal(t, int64(1), added.ID)

	txns, err := s.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, int64(1234), txns[0].Amount.Cents)
	assert.Equal(t, core.Expense, txns[0].Type)
	assert.True(t, txns[0].Date.Equal(added.Date))

	added.Category = "Groceries"
	require.NoError(t, s.UpdateTransaction(ctx, added))

	txns, err = s.Transactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", txns[0].Category)

	require.NoError(t, s.DeleteTransaction(ctx, added.ID))
	err = s.DeleteTransaction(ctx, added.ID)
	assert.ErrorIs(t, err, core.ErrTransactionNotFound)
}

func TestSQLiteStore_AutoincrementSkipsDeletedIDs(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	for i := 0; i < 3; i++ {
		_, err := s.AddTransaction(ctx, sampleTx("Food", 100))
		require.NoError(t, err)
	}
	require.NoError(t, s.DeleteTransaction(ctx, 3))

	added, err := s.AddTransaction(ctx, sampleTx("Rent", 100))
	require.NoError(t, err)
	assert.Equal(t, int64(4), added.ID)
}

func TestSQLiteStore_BudgetUpsert(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveBudget(ctx, core.Budget{Category: "Food", MonthlyLimit: core.Money{Cents: 20000}, CreatedAt: created}))
	require.NoError(t, s.SaveBudget(ctx, core.Budget{Category: "Food", MonthlyLimit: core.Money{Cents: 25000}, CreatedAt: created.AddDate(0, 1, 0)}))

	budgets, err := s.Budgets(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, int64(25000), budgets[0].MonthlyLimit.Cents)

	got, err := s.Budget(ctx, "Food")
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(created.AddDate(0, 1, 0)))

	_, err = s.Budget(ctx, "Travel")
	assert.ErrorIs(t, err, core.ErrBudgetNotFound)

	require.NoError(t, s.DeleteBudget(ctx, "Travel")) // no-op
	require.NoError(t, s.DeleteBudget(ctx, "Food"))
	budgets, err = s.Budgets(ctx)
	require.NoError(t, err)
	assert.Empty(t, budgets)
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	_, err = s.AddTransaction(ctx, sampleTx("Food", 999))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	txns, err := reopened.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, int64(999), txns[0].Amount.Cents)
}
