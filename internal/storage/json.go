package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"finledger/internal/core"
)

const (
	transactionsFile = "transactions.json"
	budgetsFile      = "budgets.json"
)

// JSONStore keeps the ledger in two indented JSON files under one
// directory. Every read loads the full file and every mutation rewrites
// it, via a temp file and rename so a crash mid-write cannot truncate
// the ledger. The replaced file survives one generation as a .bak copy.
type JSONStore struct {
	dir    string
	nextID int64
}

func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &JSONStore{dir: dir}

	// Seed the id counter from whatever is already on disk.
	txns, err := s.loadTransactions()
	if err != nil {
		return nil, err
	}
	s.nextID = nextID(txns)

	return s, nil
}

func (s *JSONStore) Close() error { return nil }

func (s *JSONStore) Transactions(ctx context.Context) ([]core.Transaction, error) {
	return s.loadTransactions()
}

func (s *JSONStore) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	txns, err := s.loadTransactions()
	if err != nil {
		return core.Transaction{}, err
	}

	t.ID = s.nextID
	txns = append(txns, t)

	if err := s.writeFile(transactionsFile, txns); err != nil {
		return core.Transaction{}, err
	}
	s.nextID++

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"type", t.Type,
		"category", t.Category,
		"amount_cents", t.Amount.Cents)
	return t, nil
}

func (s *JSONStore) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	txns, err := s.loadTransactions()
	if err != nil {
		return err
	}

	for i := range txns {
		if txns[i].ID == t.ID {
			txns[i] = t
			return s.writeFile(transactionsFile, txns)
		}
	}
	return fmt.Errorf("update transaction %d: %w", t.ID, core.ErrTransactionNotFound)
}

func (s *JSONStore) DeleteTransaction(ctx context.Context, id int64) error {
	txns, err := s.loadTransactions()
	if err != nil {
		return err
	}

	for i := range txns {
		if txns[i].ID == id {
			txns = append(txns[:i], txns[i+1:]...)
			return s.writeFile(transactionsFile, txns)
		}
	}
	return fmt.Errorf("delete transaction %d: %w", id, core.ErrTransactionNotFound)
}

func (s *JSONStore) SaveAllTransactions(ctx context.Context, txns []core.Transaction) error {
	if err := s.writeFile(transactionsFile, txns); err != nil {
		return err
	}
	if n := nextID(txns); n > s.nextID {
		s.nextID = n
	}
	slog.InfoContext(ctx, "Ledger replaced", "count", len(txns))
	return nil
}

func (s *JSONStore) Budgets(ctx context.Context) ([]core.Budget, error) {
	budgets, err := s.loadBudgets()
	if err != nil {
		return nil, err
	}
	sort.Slice(budgets, func(i, j int) bool {
		return budgets[i].Category < budgets[j].Category
	})
	return budgets, nil
}

func (s *JSONStore) Budget(ctx context.Context, category string) (core.Budget, error) {
	budgets, err := s.loadBudgets()
	if err != nil {
		return core.Budget{}, err
	}
	for _, b := range budgets {
		if b.Category == category {
			return b, nil
		}
	}
	return core.Budget{}, fmt.Errorf("budget %q: %w", category, core.ErrBudgetNotFound)
}

func (s *JSONStore) SaveBudget(ctx context.Context, b core.Budget) error {
	budgets, err := s.loadBudgets()
	if err != nil {
		return err
	}

	replaced := false
	for i := range budgets {
		if budgets[i].Category == b.Category {
			budgets[i] = b
			replaced = true
			break
		}
	}
	if !replaced {
		budgets = append(budgets, b)
	}

	if err := s.writeFile(budgetsFile, budgets); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Budget saved",
		"category", b.Category,
		"limit_cents", b.MonthlyLimit.Cents,
		"replaced", replaced)
	return nil
}

func (s *JSONStore) DeleteBudget(ctx context.Context, category string) error {
	budgets, err := s.loadBudgets()
	if err != nil {
		return err
	}

	for i := range budgets {
		if budgets[i].Category == category {
			budgets = append(budgets[:i], budgets[i+1:]...)
			return s.writeFile(budgetsFile, budgets)
		}
	}
	// Deleting an absent budget is not an error.
	return nil
}

func (s *JSONStore) loadTransactions() ([]core.Transaction, error) {
	var txns []core.Transaction
	if err := s.readFile(transactionsFile, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *JSONStore) loadBudgets() ([]core.Budget, error) {
	var budgets []core.Budget
	if err := s.readFile(budgetsFile, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

// readFile unmarshals one ledger file into v. A missing or empty file
// is an empty ledger, not an error.
func (s *JSONStore) readFile(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return ioErr("read "+name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return ioErr("decode "+name, err)
	}
	return nil
}

// writeFile marshals v indented and swaps it into place atomically,
// keeping the previous generation as name.bak.
func (s *JSONStore) writeFile(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ioErr("encode "+name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return ioErr("create temp file for "+name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return ioErr("write "+name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return ioErr("close "+name, err)
	}

	// Keep one rolling backup of the previous generation.
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, path+".bak"); err != nil {
			os.Remove(tmpName)
			return ioErr("rotate backup of "+name, err)
		}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return ioErr("replace "+name, err)
	}
	return nil
}
