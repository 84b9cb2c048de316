// Package storage provides the ledger stores: JSON files, SQLite and an
// in-memory store for tests. All implementations satisfy Repository and
// assign transaction ids from a strictly increasing counter, so an id
// is never reused after a delete.
package storage

import (
	"context"
	"errors"
	"fmt"

	"finledger/internal/core"
)

// ErrStorage marks persistence failures so callers can tell an I/O
// problem apart from a validation or not-found error.
var ErrStorage = errors.New("storage failure")

// TransactionStore persists ledger entries.
type TransactionStore interface {
	// Transactions returns every ledger entry.
	Transactions(ctx context.Context) ([]core.Transaction, error)
	// AddTransaction assigns a fresh id and persists t.
	AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	// UpdateTransaction replaces the entry with t.ID.
	// Returns core.ErrTransactionNotFound for an unknown id.
	UpdateTransaction(ctx context.Context, t core.Transaction) error
	// DeleteTransaction removes the entry with the given id.
	// Returns core.ErrTransactionNotFound for an unknown id.
	DeleteTransaction(ctx context.Context, id int64) error
	// SaveAllTransactions replaces the whole ledger, keeping the ids
	// carried by txns. Used by restore.
	SaveAllTransactions(ctx context.Context, txns []core.Transaction) error
}

// BudgetStore persists per-category budgets, keyed by category.
type BudgetStore interface {
	// Budgets returns all budgets ordered by category name.
	Budgets(ctx context.Context) ([]core.Budget, error)
	// Budget returns the budget for a category, or core.ErrBudgetNotFound.
	Budget(ctx context.Context, category string) (core.Budget, error)
	// SaveBudget inserts or replaces the budget for b.Category.
	SaveBudget(ctx context.Context, b core.Budget) error
	// DeleteBudget removes a category's budget. Absent categories are a no-op.
	DeleteBudget(ctx context.Context, category string) error
}

// Repository is the full ledger store surface the facade depends on.
type Repository interface {
	TransactionStore
	BudgetStore
	Close() error
}

func ioErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// nextID returns the successor of the highest id in txns, or 1 for an
// empty ledger. Stores call this once at load and count up from there.
func nextID(txns []core.Transaction) int64 {
	var max int64
	for _, t := range txns {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}
