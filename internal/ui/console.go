// Package ui is the interactive console: a menu loop over the finance
// facade. It owns no business logic; every choice maps to one facade or
// exporter call and a renderer.
package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"finledger/internal/core"
	"finledger/internal/export"
	"finledger/internal/services"
)

const menu = `
=== finledger ===
 1. Add income
 2. Add expense
 3. Show balance
 4. Monthly report
 5. Yearly trend
 6. Category analysis
 7. List transactions
 8. Update transaction
 9. Delete transaction
10. Set budget
11. List budgets
12. Delete budget
13. Budget alerts
14. Export ledger
15. Backup
 0. Quit
`

type Console struct {
	svc       *services.FinanceService
	exporter  *export.Exporter
	backupDir string
	in        *bufio.Scanner
	out       io.Writer
}

func NewConsole(svc *services.FinanceService, exporter *export.Exporter, backupDir string, in io.Reader, out io.Writer) *Console {
	return &Console{
		svc:       svc,
		exporter:  exporter,
		backupDir: backupDir,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

// Run drives the menu until the user quits or input ends. Errors from
// individual operations are reported and the loop continues; only a
// closed input stream or context cancellation ends the session.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, menu)
		choice, ok := c.prompt("Choose: ")
		if !ok {
			return nil
		}

		var err error
		switch strings.TrimSpace(choice) {
		case "1":
			err = c.addTransaction(ctx, core.Income)
		case "2":
			err = c.addTransaction(ctx, core.Expense)
		case "3":
			err = c.showBalance(ctx)
		case "4":
			err = c.showMonthlyReport(ctx)
		case "5":
			err = c.showTrend(ctx)
		case "6":
			err = c.showCategoryAnalysis(ctx)
		case "7":
			err = c.listTransactions(ctx)
		case "8":
			err = c.updateTransaction(ctx)
		case "9":
			err = c.deleteTransaction(ctx)
		case "10":
			err = c.setBudget(ctx)
		case "11":
			err = c.listBudgets(ctx)
		case "12":
			err = c.deleteBudget(ctx)
		case "13":
			err = c.showAlerts(ctx)
		case "14":
			err = c.exportLedger(ctx)
		case "15":
			err = c.backup(ctx)
		case "0", "q", "quit":
			fmt.Fprintln(c.out, "Bye.")
			return nil
		default:
			fmt.Fprintln(c.out, "Unknown choice.")
		}
		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
	}
}

func (c *Console) addTransaction(ctx context.Context, typ core.TransactionType) error {
	amount, err := c.promptAmount()
	if err != nil {
		return err
	}
	category, _ := c.prompt("Category: ")
	description, _ := c.prompt("Description: ")

	var t core.Transaction
	if typ == core.Income {
		t, err = c.svc.AddIncome(ctx, amount, category, description)
	} else {
		t, err = c.svc.AddExpense(ctx, amount, category, description)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Recorded %s #%d: %s %s\n", t.Type, t.ID, t.Amount, t.Category)
	return nil
}

func (c *Console) showBalance(ctx context.Context) error {
	balance, err := c.svc.CurrentBalance(ctx)
	if err != nil {
		return err
	}
	RenderBalance(c.out, balance)
	return nil
}

func (c *Console) showMonthlyReport(ctx context.Context) error {
	year, month, err := c.promptYearMonth()
	if err != nil {
		return err
	}
	rep, err := c.svc.MonthlyReport(ctx, year, month)
	if err != nil {
		return err
	}
	RenderMonthlyReport(c.out, rep)
	return nil
}

func (c *Console) showTrend(ctx context.Context) error {
	year, err := c.promptInt("Year: ")
	if err != nil {
		return err
	}
	trend, err := c.svc.YearlyTrend(ctx, year)
	if err != nil {
		return err
	}
	RenderTrend(c.out, trend)
	return nil
}

func (c *Console) showCategoryAnalysis(ctx context.Context) error {
	from, err := c.promptOptionalDate("From (YYYY-MM-DD, empty for open): ")
	if err != nil {
		return err
	}
	to, err := c.promptOptionalDate("To (YYYY-MM-DD, empty for open): ")
	if err != nil {
		return err
	}
	if !to.IsZero() {
		// Include the whole end day.
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	totals, err := c.svc.CategoryAnalysis(ctx, from, to)
	if err != nil {
		return err
	}
	RenderCategoryAnalysis(c.out, totals)
	return nil
}

func (c *Console) listTransactions(ctx context.Context) error {
	fragment, _ := c.prompt("Category contains (empty for all): ")
	fragment = strings.TrimSpace(fragment)

	var (
		txns []core.Transaction
		err  error
	)
	if fragment == "" {
		txns, err = c.svc.TransactionsByDateRange(ctx, time.Time{}, time.Time{})
	} else {
		txns, err = c.svc.TransactionsByCategory(ctx, fragment)
	}
	if err != nil {
		return err
	}
	RenderTransactions(c.out, txns)
	return nil
}

func (c *Console) updateTransaction(ctx context.Context) error {
	id, err := c.promptInt64("Transaction id: ")
	if err != nil {
		return err
	}
	amount, err := c.promptAmount()
	if err != nil {
		return err
	}
	category, _ := c.prompt("Category: ")
	description, _ := c.prompt("Description: ")
	typStr, _ := c.prompt("Type (income/expense): ")

	updated, err := c.svc.UpdateTransaction(ctx, core.Transaction{
		ID:          id,
		Amount:      amount,
		Category:    category,
		Description: description,
		Type:        core.TransactionType(strings.TrimSpace(typStr)),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Updated #%d\n", updated.ID)
	return nil
}

func (c *Console) deleteTransaction(ctx context.Context) error {
	id, err := c.promptInt64("Transaction id: ")
	if err != nil {
		return err
	}
	if err := c.svc.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Deleted #%d\n", id)
	return nil
}

func (c *Console) setBudget(ctx context.Context) error {
	category, _ := c.prompt("Category: ")
	limitStr, _ := c.prompt("Monthly limit: ")
	limit, err := core.ParseAmount(limitStr)
	if err != nil {
		return err
	}
	b, err := c.svc.SetBudget(ctx, category, limit)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Budget for %s set to %s per month\n", b.Category, b.MonthlyLimit)
	return nil
}

func (c *Console) listBudgets(ctx context.Context) error {
	budgets, err := c.svc.Budgets(ctx)
	if err != nil {
		return err
	}
	RenderBudgets(c.out, budgets)
	return nil
}

func (c *Console) deleteBudget(ctx context.Context) error {
	category, _ := c.prompt("Category: ")
	if err := c.svc.DeleteBudget(ctx, strings.TrimSpace(category)); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Budget removed (if it existed).")
	return nil
}

func (c *Console) showAlerts(ctx context.Context) error {
	year, month, err := c.promptYearMonth()
	if err != nil {
		return err
	}
	alerts, err := c.svc.BudgetAlerts(ctx, year, month)
	if err != nil {
		return err
	}
	RenderAlerts(c.out, alerts)
	return nil
}

func (c *Console) exportLedger(ctx context.Context) error {
	format, _ := c.prompt("Format (json/table): ")
	path, _ := c.prompt("File: ")
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("export path cannot be empty")
	}
	switch strings.TrimSpace(format) {
	case "json":
		return c.exporter.JSON(ctx, path)
	case "table":
		return c.exporter.Table(ctx, path)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func (c *Console) backup(ctx context.Context) error {
	target, err := c.exporter.BackupTo(ctx, c.backupDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Backup written to %s\n", target)
	return nil
}

func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

func (c *Console) promptAmount() (core.Money, error) {
	s, _ := c.prompt("Amount: ")
	return core.ParseAmount(s)
}

func (c *Console) promptInt(label string) (int, error) {
	s, _ := c.prompt(label)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return n, nil
}

func (c *Console) promptInt64(label string) (int64, error) {
	s, _ := c.prompt(label)
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return n, nil
}

func (c *Console) promptYearMonth() (int, int, error) {
	year, err := c.promptInt("Year: ")
	if err != nil {
		return 0, 0, err
	}
	month, err := c.promptInt("Month (1-12): ")
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

func (c *Console) promptOptionalDate(label string) (time.Time, error) {
	s, _ := c.prompt(label)
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}
