// Package services holds the finance facade: the one validated path
// between the UI and the ledger store plus the report engines.
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"finledger/internal/core"
	"finledger/internal/log"
	"finledger/internal/report"
	"finledger/internal/storage"
)

// FinanceService validates inputs, talks to the ledger store and
// delegates every computation to the report engines. Validation always
// happens before any write, so a rejected call never mutates the store.
type FinanceService struct {
	store  storage.Repository
	logger *log.Logger
	now    func() time.Time
}

func NewFinanceService(store storage.Repository, logger *log.Logger) *FinanceService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &FinanceService{
		store:  store,
		logger: logger.WithComponent(log.ComponentFinance),
		now:    time.Now,
	}
}

// AddIncome records an income transaction stamped with the current time.
func (s *FinanceService) AddIncome(ctx context.Context, amount core.Money, category, description string) (core.Transaction, error) {
	return s.add(ctx, core.Income, amount, category, description)
}

// AddExpense records an expense transaction stamped with the current time.
func (s *FinanceService) AddExpense(ctx context.Context, amount core.Money, category, description string) (core.Transaction, error) {
	return s.add(ctx, core.Expense, amount, category, description)
}

func (s *FinanceService) add(ctx context.Context, typ core.TransactionType, amount core.Money, category, description string) (core.Transaction, error) {
	t := core.Transaction{
		Date:        s.now(),
		Amount:      amount,
		Category:    strings.TrimSpace(category),
		Description: description,
		Type:        typ,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	added, err := s.store.AddTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add %s: %w", typ, err)
	}
	return added, nil
}

// UpdateTransaction replaces the amount, category, description and type
// of the transaction with t.ID. The entry is re-stamped with the
// current time.
func (s *FinanceService) UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.Category = strings.TrimSpace(t.Category)
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	t.Date = s.now()
	if err := s.store.UpdateTransaction(ctx, t); err != nil {
		return core.Transaction{}, err
	}

	s.logger.InfoContext(ctx, "Transaction updated",
		log.FieldTransactionID, t.ID,
		log.FieldCategory, t.Category,
		log.FieldAmountCents, t.Amount.Cents)
	return t, nil
}

// DeleteTransaction removes one entry by id.
func (s *FinanceService) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Transaction deleted", log.FieldTransactionID, id)
	return nil
}

// SetBudget creates or replaces the budget for a category. The stored
// CreatedAt is refreshed on every upsert.
func (s *FinanceService) SetBudget(ctx context.Context, category string, limit core.Money) (core.Budget, error) {
	b := core.Budget{
		Category:     strings.TrimSpace(category),
		MonthlyLimit: limit,
		CreatedAt:    s.now(),
	}
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	if err := s.store.SaveBudget(ctx, b); err != nil {
		return core.Budget{}, fmt.Errorf("set budget: %w", err)
	}
	return b, nil
}

// DeleteBudget removes a category's budget; absent categories are a no-op.
func (s *FinanceService) DeleteBudget(ctx context.Context, category string) error {
	return s.store.DeleteBudget(ctx, category)
}

// Budgets lists all budgets ordered by category.
func (s *FinanceService) Budgets(ctx context.Context) ([]core.Budget, error) {
	return s.store.Budgets(ctx)
}

// Transactions returns the full ledger in store order.
func (s *FinanceService) Transactions(ctx context.Context) ([]core.Transaction, error) {
	return s.store.Transactions(ctx)
}

// TransactionsByCategory matches categories containing the given
// fragment, case-sensitively. This is deliberately fuzzy: "Food"
// matches both "Food" and "Fast Food".
func (s *FinanceService) TransactionsByCategory(ctx context.Context, fragment string) ([]core.Transaction, error) {
	return s.filter(ctx, func(t core.Transaction) bool {
		return strings.Contains(t.Category, fragment)
	})
}

// TransactionsByDateRange returns entries with from <= date <= to.
func (s *FinanceService) TransactionsByDateRange(ctx context.Context, from, to time.Time) ([]core.Transaction, error) {
	return s.filter(ctx, func(t core.Transaction) bool {
		if !from.IsZero() && t.Date.Before(from) {
			return false
		}
		if !to.IsZero() && t.Date.After(to) {
			return false
		}
		return true
	})
}

// TransactionsByType returns all income or all expense entries.
func (s *FinanceService) TransactionsByType(ctx context.Context, typ core.TransactionType) ([]core.Transaction, error) {
	if err := typ.Validate(); err != nil {
		return nil, err
	}
	return s.filter(ctx, func(t core.Transaction) bool {
		return t.Type == typ
	})
}

// filter loads the ledger, keeps entries matching keep and orders the
// result by date descending.
func (s *FinanceService) filter(ctx context.Context, keep func(core.Transaction) bool) ([]core.Transaction, error) {
	txns, err := s.store.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	var out []core.Transaction
	for _, t := range txns {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

// CurrentBalance returns total income minus total expense.
func (s *FinanceService) CurrentBalance(ctx context.Context) (core.Money, error) {
	txns, err := s.store.Transactions(ctx)
	if err != nil {
		return core.Money{}, err
	}
	return report.Balance(txns), nil
}

// MonthlyReport builds the report for one year+month.
func (s *FinanceService) MonthlyReport(ctx context.Context, year, month int) (core.MonthlyReport, error) {
	txns, err := s.store.Transactions(ctx)
	if err != nil {
		return core.MonthlyReport{}, err
	}
	return report.Monthly(txns, year, month)
}

// YearlyTrend builds the 12-month trend for one year.
func (s *FinanceService) YearlyTrend(ctx context.Context, year int) (core.TrendReport, error) {
	txns, err := s.store.Transactions(ctx)
	if err != nil {
		return core.TrendReport{}, err
	}
	return report.YearlyTrend(txns, year), nil
}

// CategoryAnalysis sums amounts per category over an optional window.
func (s *FinanceService) CategoryAnalysis(ctx context.Context, from, to time.Time) ([]core.CategoryAmount, error) {
	txns, err := s.store.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	return report.CategoryAnalysis(txns, from, to), nil
}

// BudgetAlerts checks every budget against the month's spending.
func (s *FinanceService) BudgetAlerts(ctx context.Context, year, month int) ([]core.BudgetAlert, error) {
	txns, err := s.store.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	budgets, err := s.store.Budgets(ctx)
	if err != nil {
		return nil, err
	}
	return report.CheckAlerts(txns, budgets, year, month)
}

func (s *FinanceService) Close() error {
	return s.store.Close()
}
