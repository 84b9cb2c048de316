package storage

import (
	"context"
	"fmt"
	"sort"

	"finledger/internal/core"
)

// MemoryStore is a throwaway in-process ledger. It backs tests and the
// "memory" backend, where nothing should survive the session.
type MemoryStore struct {
	txns    []core.Transaction
	budgets map[string]core.Budget
	nextID  int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		budgets: make(map[string]core.Budget),
		nextID:  1,
	}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Transactions(ctx context.Context) ([]core.Transaction, error) {
	out := make([]core.Transaction, len(s.txns))
	copy(out, s.txns)
	return out, nil
}

func (s *MemoryStore) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.ID = s.nextID
	s.nextID++
	s.txns = append(s.txns, t)
	return t, nil
}

func (s *MemoryStore) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	for i := range s.txns {
		if s.txns[i].ID == t.ID {
			s.txns[i] = t
			return nil
		}
	}
	return fmt.Errorf("update transaction %d: %w", t.ID, core.ErrTransactionNotFound)
}

func (s *MemoryStore) DeleteTransaction(ctx context.Context, id int64) error {
	for i := range s.txns {
		if s.txns[i].ID == id {
			s.txns = append(s.txns[:i], s.txns[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete transaction %d: %w", id, core.ErrTransactionNotFound)
}

func (s *MemoryStore) SaveAllTransactions(ctx context.Context, txns []core.Transaction) error {
	s.txns = make([]core.Transaction, len(txns))
	copy(s.txns, txns)
	if n := nextID(txns); n > s.nextID {
		s.nextID = n
	}
	return nil
}

func (s *MemoryStore) Budgets(ctx context.Context) ([]core.Budget, error) {
	out := make([]core.Budget, 0, len(s.budgets))
	for _, b := range s.budgets {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (s *MemoryStore) Budget(ctx context.Context, category string) (core.Budget, error) {
	b, ok := s.budgets[category]
	if !ok {
		return core.Budget{}, fmt.Errorf("budget %q: %w", category, core.ErrBudgetNotFound)
	}
	return b, nil
}

func (s *MemoryStore) SaveBudget(ctx context.Context, b core.Budget) error {
	s.budgets[b.Category] = b
	return nil
}

func (s *MemoryStore) DeleteBudget(ctx context.Context, category string) error {
	delete(s.budgets, category)
	return nil
}
