package core

// Derived views over the ledger. None of these are persisted; every
// report is recomputed from the full transaction set so results are
// deterministic for a given ledger.

// CategoryAmount is an amount aggregated under one category name.
type CategoryAmount struct {
	Category string
	Amount   Money
}

// CategorySummary is one category's share of a total.
type CategorySummary struct {
	Category   string
	Amount     Money
	Percentage float64 // 0..100, 0 when the total is zero
}

// MonthlyReport summarizes a single year+month.
type MonthlyReport struct {
	Year                 int
	Month                int // 1-12
	TotalIncome          Money
	TotalExpense         Money
	NetBalance           Money
	TransactionCount     int
	TopIncomeCategories  []CategorySummary // at most 3
	TopExpenseCategories []CategorySummary // at most 5
}

// MonthlySummary is one month's totals inside a yearly trend.
type MonthlySummary struct {
	Income  Money
	Expense Money
	Balance Money
}

// TrendReport maps every month 1..12 of a year to its summary.
// Months without transactions are present with zero values.
type TrendReport struct {
	Year        int
	MonthlyData map[int]MonthlySummary
}

type AlertLevel string

const (
	NearLimit  AlertLevel = "near_limit"
	OverBudget AlertLevel = "over_budget"
)

// BudgetAlert is raised when a month's spending in a category reaches
// 80% of its budget (NearLimit) or exceeds it (OverBudget).
type BudgetAlert struct {
	Category       string
	BudgetLimit    Money
	ActualSpending Money
	OverAmount     Money // zero unless Level is OverBudget
	Level          AlertLevel
}
