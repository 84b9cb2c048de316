package ui

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"finledger/internal/export"
	"finledger/internal/services"
	"finledger/internal/storage"
)

func runScript(t *testing.T, input string) (string, *services.FinanceService) {
	t.Helper()
	store := storage.NewMemoryStore()
	svc := services.NewFinanceService(store, nil)
	exporter := export.NewExporter(store, nil)

	var out bytes.Buffer
	c := NewConsole(svc, exporter, t.TempDir(), strings.NewReader(input), &out)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("console run: %v", err)
	}
	return out.String(), svc
}

func TestConsole_AddAndBalance(t *testing.T) {
	input := strings.Join([]string{
		"1", // add income
		"1000", "Salary", "january pay",
		"2", // add expense
		"200,50", "Food", "groceries",
		"3", // balance
		"0", // quit
	}, "\n") + "\n"

	out, svc := runScript(t, input)

	if !strings.Contains(out, "Recorded income #1") {
		t.Errorf("missing income confirmation in output:\n%s", out)
	}
	if !strings.Contains(out, "Current balance: 799.50") {
		t.Errorf("missing balance in output:\n%s", out)
	}

	txns, err := svc.Transactions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}
}

func TestConsole_InvalidAmountKeepsRunning(t *testing.T) {
	input := strings.Join([]string{
		"2", "-5", // invalid amount
		"3", // balance still works
		"0",
	}, "\n") + "\n"

	out, _ := runScript(t, input)
	if !strings.Contains(out, "Error:") {
		t.Errorf("expected an error line, got:\n%s", out)
	}
	if !strings.Contains(out, "Current balance: 0.00") {
		t.Errorf("loop should continue after an error:\n%s", out)
	}
}

func TestConsole_BudgetAndAlerts(t *testing.T) {
	year := time.Now().Year()
	month := int(time.Now().Month())

	input := strings.Join([]string{
		"2", "200", "Food", "groceries",
		"10", "Food", "250",
		"13", // alerts for current month
		strconv.Itoa(year), strconv.Itoa(month),
		"0",
	}, "\n") + "\n"

	out, _ := runScript(t, input)
	if !strings.Contains(out, "NEAR LIMIT Food") {
		t.Errorf("expected a near-limit alert, got:\n%s", out)
	}
}

func TestConsole_EOFEndsSession(t *testing.T) {
	out, _ := runScript(t, "") // no input at all
	if !strings.Contains(out, "finledger") {
		t.Errorf("menu should have been printed:\n%s", out)
	}
}
