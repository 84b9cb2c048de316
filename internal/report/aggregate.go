// Package report implements the aggregation and budget-alert engines.
//
// Every function here is pure: it takes a snapshot of the ledger and
// returns a derived value. Nothing is cached and no I/O happens, so two
// calls with the same input always agree.
package report

import (
	"fmt"
	"sort"
	"time"

	"finledger/internal/core"
)

const (
	topIncomeCount  = 3
	topExpenseCount = 5
)

// Balance returns total income minus total expense over the whole
// ledger. An empty ledger yields zero.
func Balance(txns []core.Transaction) core.Money {
	var income, expense core.Money
	for _, t := range txns {
		switch t.Type {
		case core.Income:
			income = income.Add(t.Amount)
		case core.Expense:
			expense = expense.Add(t.Amount)
		}
	}
	return income.Sub(expense)
}

// Monthly builds the report for one year+month. A month outside 1..12
// is rejected; a month with no transactions yields a zero-valued
// report, not an error.
func Monthly(txns []core.Transaction, year, month int) (core.MonthlyReport, error) {
	if !core.ValidMonth(month) {
		return core.MonthlyReport{}, fmt.Errorf("month %d: %w", month, core.ErrInvalidMonth)
	}

	rep := core.MonthlyReport{Year: year, Month: month}

	var incomes, expenses []core.Transaction
	for _, t := range txns {
		if t.Date.Year() != year || int(t.Date.Month()) != month {
			continue
		}
		rep.TransactionCount++
		switch t.Type {
		case core.Income:
			rep.TotalIncome = rep.TotalIncome.Add(t.Amount)
			incomes = append(incomes, t)
		case core.Expense:
			rep.TotalExpense = rep.TotalExpense.Add(t.Amount)
			expenses = append(expenses, t)
		}
	}

	rep.NetBalance = rep.TotalIncome.Sub(rep.TotalExpense)
	rep.TopIncomeCategories = TopCategories(incomes, rep.TotalIncome, topIncomeCount)
	rep.TopExpenseCategories = TopCategories(expenses, rep.TotalExpense, topExpenseCount)
	return rep, nil
}

// TopCategories groups txns by category, computes each group's share of
// total and returns at most topCount summaries, largest first. Ties are
// broken by category name ascending so the order is stable across
// calls. A zero total yields an empty list.
func TopCategories(txns []core.Transaction, total core.Money, topCount int) []core.CategorySummary {
	if total.Cents == 0 || topCount <= 0 {
		return nil
	}

	sums := groupByCategory(txns)

	out := make([]core.CategorySummary, 0, len(sums))
	for _, g := range sums {
		out = append(out, core.CategorySummary{
			Category:   g.Category,
			Amount:     g.Amount,
			Percentage: g.Amount.Float64() / total.Float64() * 100,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > topCount {
		out = out[:topCount]
	}
	return out
}

// YearlyTrend computes income/expense/balance for every month of year.
// All 12 entries are always present; months without transactions carry
// zero values.
func YearlyTrend(txns []core.Transaction, year int) core.TrendReport {
	trend := core.TrendReport{
		Year:        year,
		MonthlyData: make(map[int]core.MonthlySummary, 12),
	}
	for m := 1; m <= 12; m++ {
		trend.MonthlyData[m] = core.MonthlySummary{}
	}
	for _, t := range txns {
		if t.Date.Year() != year {
			continue
		}
		m := int(t.Date.Month())
		s := trend.MonthlyData[m]
		switch t.Type {
		case core.Income:
			s.Income = s.Income.Add(t.Amount)
		case core.Expense:
			s.Expense = s.Expense.Add(t.Amount)
		}
		s.Balance = s.Income.Sub(s.Expense)
		trend.MonthlyData[m] = s
	}
	return trend
}

// CategoryAnalysis sums amounts per category over an optional inclusive
// date window. A zero from or to leaves that bound open. The result is
// ordered by amount descending, ties by category name ascending.
func CategoryAnalysis(txns []core.Transaction, from, to time.Time) []core.CategoryAmount {
	var filtered []core.Transaction
	for _, t := range txns {
		if !from.IsZero() && t.Date.Before(from) {
			continue
		}
		if !to.IsZero() && t.Date.After(to) {
			continue
		}
		filtered = append(filtered, t)
	}

	out := groupByCategory(filtered)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// groupByCategory sums amounts per category, preserving first-seen
// order of the categories.
func groupByCategory(txns []core.Transaction) []core.CategoryAmount {
	idx := make(map[string]int, len(txns))
	var out []core.CategoryAmount
	for _, t := range txns {
		i, ok := idx[t.Category]
		if !ok {
			i = len(out)
			idx[t.Category] = i
			out = append(out, core.CategoryAmount{Category: t.Category})
		}
		out[i].Amount = out[i].Amount.Add(t.Amount)
	}
	return out
}
