package report

import (
	"errors"
	"testing"
	"time"

	"finledger/internal/core"
)

func tx(typ core.TransactionType, cents int64, category string, year, month, day int) core.Transaction {
	return core.Transaction{
		Date:     time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC),
		Amount:   core.Money{Cents: cents},
		Category: category,
		Type:     typ,
	}
}

func TestBalance(t *testing.T) {
	tests := []struct {
		name string
		txns []core.Transaction
		want int64
	}{
		{
			name: "empty ledger",
			txns: nil,
			want: 0,
		},
		{
			name: "income only",
			txns: []core.Transaction{
				tx(core.Income, 100_000, "Salary", 2024, 1, 1),
			},
			want: 100_000,
		},
		{
			name: "income minus expense",
			txns: []core.Transaction{
				tx(core.Income, 100_000, "Salary", 2024, 1, 1),
				tx(core.Expense, 20_000, "Food", 2024, 1, 5),
				tx(core.Expense, 90_000, "Rent", 2024, 1, 10),
			},
			want: -10_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Balance(tt.txns)
			if got.Cents != tt.want {
				t.Errorf("Balance() = %d, want %d", got.Cents, tt.want)
			}
		})
	}
}

func TestMonthly_InvalidMonth(t *testing.T) {
	for _, m := range []int{0, -3, 13} {
		if _, err := Monthly(nil, 2024, m); !errors.Is(err, core.ErrInvalidMonth) {
			t.Errorf("month %d: expected ErrInvalidMonth, got %v", m, err)
		}
	}
}

func TestMonthly_EmptyMonthIsZeroReport(t *testing.T) {
	rep, err := Monthly(nil, 2024, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Year != 2024 || rep.Month != 2 {
		t.Errorf("expected 2024-02, got %d-%02d", rep.Year, rep.Month)
	}
	if rep.TotalIncome.Cents != 0 || rep.TotalExpense.Cents != 0 || rep.TransactionCount != 0 {
		t.Errorf("expected zero report, got %+v", rep)
	}
	if len(rep.TopIncomeCategories) != 0 || len(rep.TopExpenseCategories) != 0 {
		t.Errorf("expected no top categories, got %+v", rep)
	}
}

func TestMonthly_JanuaryScenario(t *testing.T) {
	txns := []core.Transaction{
		tx(core.Income, 100_000, "Salary", 2024, 1, 1),
		tx(core.Expense, 20_000, "Food", 2024, 1, 5),
		tx(core.Expense, 90_000, "Rent", 2024, 1, 10),
		// Other months must be excluded.
		tx(core.Expense, 5_000, "Food", 2024, 2, 1),
		tx(core.Income, 7_000, "Salary", 2023, 1, 1),
	}

	rep, err := Monthly(txns, 2024, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.TotalIncome.Cents != 100_000 {
		t.Errorf("TotalIncome = %d, want 100000", rep.TotalIncome.Cents)
	}
	if rep.TotalExpense.Cents != 110_000 {
		t.Errorf("TotalExpense = %d, want 110000", rep.TotalExpense.Cents)
	}
	if rep.NetBalance.Cents != -10_000 {
		t.Errorf("NetBalance = %d, want -10000", rep.NetBalance.Cents)
	}
	if rep.TransactionCount != 3 {
		t.Errorf("TransactionCount = %d, want 3", rep.TransactionCount)
	}
	if len(rep.TopExpenseCategories) != 2 {
		t.Fatalf("expected 2 expense categories, got %d", len(rep.TopExpenseCategories))
	}
	if rep.TopExpenseCategories[0].Category != "Rent" {
		t.Errorf("largest expense category = %q, want Rent", rep.TopExpenseCategories[0].Category)
	}
}

func TestTopCategories(t *testing.T) {
	txns := []core.Transaction{
		tx(core.Expense, 300, "B", 2024, 1, 1),
		tx(core.Expense, 500, "A", 2024, 1, 2),
		tx(core.Expense, 200, "C", 2024, 1, 3),
		tx(core.Expense, 300, "A", 2024, 1, 4), // A totals 800
	}
	total := core.Money{Cents: 1300}

	got := TopCategories(txns, total, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}
	if got[0].Category != "A" || got[0].Amount.Cents != 800 {
		t.Errorf("top = %+v, want A/800", got[0])
	}
	if got[1].Category != "B" || got[1].Amount.Cents != 300 {
		t.Errorf("second = %+v, want B/300", got[1])
	}

	var sum int64
	for _, s := range got {
		sum += s.Amount.Cents
		if s.Percentage < 0 || s.Percentage > 100 {
			t.Errorf("percentage out of range: %+v", s)
		}
	}
	if sum > total.Cents {
		t.Errorf("summed amounts %d exceed total %d", sum, total.Cents)
	}
}

func TestTopCategories_TiesOrderedByName(t *testing.T) {
	txns := []core.Transaction{
		tx(core.Expense, 100, "Zoo", 2024, 1, 1),
		tx(core.Expense, 100, "Art", 2024, 1, 2),
	}
	got := TopCategories(txns, core.Money{Cents: 200}, 5)
	if len(got) != 2 || got[0].Category != "Art" || got[1].Category != "Zoo" {
		t.Fatalf("tie should order by name: %+v", got)
	}
}

func TestTopCategories_ZeroTotal(t *testing.T) {
	txns := []core.Transaction{tx(core.Expense, 100, "Food", 2024, 1, 1)}
	if got := TopCategories(txns, core.Money{}, 3); len(got) != 0 {
		t.Fatalf("expected empty list for zero total, got %+v", got)
	}
}

func TestYearlyTrend_AlwaysTwelveMonths(t *testing.T) {
	trend := YearlyTrend(nil, 2024)
	if trend.Year != 2024 {
		t.Errorf("Year = %d, want 2024", trend.Year)
	}
	if len(trend.MonthlyData) != 12 {
		t.Fatalf("expected 12 entries, got %d", len(trend.MonthlyData))
	}
	for m := 1; m <= 12; m++ {
		s, ok := trend.MonthlyData[m]
		if !ok {
			t.Fatalf("month %d missing", m)
		}
		if s.Income.Cents != 0 || s.Expense.Cents != 0 || s.Balance.Cents != 0 {
			t.Errorf("month %d should be zero, got %+v", m, s)
		}
	}
}

func TestYearlyTrend_SumsPerMonth(t *testing.T) {
	txns := []core.Transaction{
		tx(core.Income, 100_000, "Salary", 2024, 3, 1),
		tx(core.Expense, 40_000, "Rent", 2024, 3, 2),
		tx(core.Expense, 10_000, "Food", 2024, 7, 15),
		tx(core.Income, 99_999, "Salary", 2023, 3, 1), // other year
	}
	trend := YearlyTrend(txns, 2024)

	march := trend.MonthlyData[3]
	if march.Income.Cents != 100_000 || march.Expense.Cents != 40_000 || march.Balance.Cents != 60_000 {
		t.Errorf("march = %+v", march)
	}
	july := trend.MonthlyData[7]
	if july.Expense.Cents != 10_000 || july.Balance.Cents != -10_000 {
		t.Errorf("july = %+v", july)
	}
	if len(trend.MonthlyData) != 12 {
		t.Errorf("expected 12 entries, got %d", len(trend.MonthlyData))
	}
}

func TestCategoryAnalysis(t *testing.T) {
	txns := []core.Transaction{
		tx(core.Expense, 500, "Food", 2024, 1, 10),
		tx(core.Expense, 700, "Rent", 2024, 2, 1),
		tx(core.Expense, 300, "Food", 2024, 3, 5),
	}

	tests := []struct {
		name     string
		from, to time.Time
		want     []core.CategoryAmount
	}{
		{
			name: "no bounds",
			want: []core.CategoryAmount{
				{Category: "Food", Amount: core.Money{Cents: 800}},
				{Category: "Rent", Amount: core.Money{Cents: 700}},
			},
		},
		{
			name: "from only",
			from: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			want: []core.CategoryAmount{
				{Category: "Rent", Amount: core.Money{Cents: 700}},
				{Category: "Food", Amount: core.Money{Cents: 300}},
			},
		},
		{
			name: "to only",
			to:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			want: []core.CategoryAmount{
				{Category: "Food", Amount: core.Money{Cents: 500}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategoryAnalysis(txns, tt.from, tt.to)
			if len(got) != len(tt.want) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCategoryAnalysis_EmptyLedger(t *testing.T) {
	if got := CategoryAnalysis(nil, time.Time{}, time.Time{}); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}
