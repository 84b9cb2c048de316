package ui

import (
	"fmt"
	"io"
	"text/tabwriter"

	"finledger/internal/core"
)

// RenderBalance prints the current balance line.
func RenderBalance(w io.Writer, balance core.Money) {
	fmt.Fprintf(w, "Current balance: %s\n", balance)
}

// RenderMonthlyReport prints a month's totals and top categories.
func RenderMonthlyReport(w io.Writer, rep core.MonthlyReport) {
	fmt.Fprintf(w, "Report for %04d-%02d\n", rep.Year, rep.Month)
	fmt.Fprintf(w, "  Income:       %s\n", rep.TotalIncome)
	fmt.Fprintf(w, "  Expense:      %s\n", rep.TotalExpense)
	fmt.Fprintf(w, "  Net balance:  %s\n", rep.NetBalance)
	fmt.Fprintf(w, "  Transactions: %d\n", rep.TransactionCount)

	if len(rep.TopIncomeCategories) > 0 {
		fmt.Fprintln(w, "Top income categories:")
		renderSummaries(w, rep.TopIncomeCategories)
	}
	if len(rep.TopExpenseCategories) > 0 {
		fmt.Fprintln(w, "Top expense categories:")
		renderSummaries(w, rep.TopExpenseCategories)
	}
}

func renderSummaries(w io.Writer, summaries []core.CategorySummary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, s := range summaries {
		fmt.Fprintf(tw, "  %s\t%s\t%.1f%%\n", s.Category, s.Amount, s.Percentage)
	}
	tw.Flush()
}

// RenderTrend prints all 12 months of a yearly trend.
func RenderTrend(w io.Writer, trend core.TrendReport) {
	fmt.Fprintf(w, "Trend for %d\n", trend.Year)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  Month\tIncome\tExpense\tBalance")
	for m := 1; m <= 12; m++ {
		s := trend.MonthlyData[m]
		fmt.Fprintf(tw, "  %02d\t%s\t%s\t%s\n", m, s.Income, s.Expense, s.Balance)
	}
	tw.Flush()
}

// RenderCategoryAnalysis prints per-category totals, largest first.
func RenderCategoryAnalysis(w io.Writer, totals []core.CategoryAmount) {
	if len(totals) == 0 {
		fmt.Fprintln(w, "No transactions in range.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range totals {
		fmt.Fprintf(tw, "  %s\t%s\n", c.Category, c.Amount)
	}
	tw.Flush()
}

// RenderTransactions prints ledger entries as an aligned table.
func RenderTransactions(w io.Writer, txns []core.Transaction) {
	if len(txns) == 0 {
		fmt.Fprintln(w, "No transactions.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tDate\tType\tAmount\tCategory\tDescription")
	for _, t := range txns {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Date.Format("2006-01-02 15:04"), t.Type, t.Amount, t.Category, t.Description)
	}
	tw.Flush()
}

// RenderAlerts prints budget alerts, or a calm line when there are none.
func RenderAlerts(w io.Writer, alerts []core.BudgetAlert) {
	if len(alerts) == 0 {
		fmt.Fprintln(w, "All budgets are fine.")
		return
	}
	for _, a := range alerts {
		switch a.Level {
		case core.OverBudget:
			fmt.Fprintf(w, "  OVER BUDGET %s: spent %s of %s (over by %s)\n",
				a.Category, a.ActualSpending, a.BudgetLimit, a.OverAmount)
		case core.NearLimit:
			fmt.Fprintf(w, "  NEAR LIMIT %s: spent %s of %s\n",
				a.Category, a.ActualSpending, a.BudgetLimit)
		}
	}
}

// RenderBudgets prints all budgets ordered by category.
func RenderBudgets(w io.Writer, budgets []core.Budget) {
	if len(budgets) == 0 {
		fmt.Fprintln(w, "No budgets configured.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  Category\tMonthly limit\tSince")
	for _, b := range budgets {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", b.Category, b.MonthlyLimit, b.CreatedAt.Format("2006-01-02"))
	}
	tw.Flush()
}
