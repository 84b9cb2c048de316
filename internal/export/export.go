// Package export writes the ledger out of the system: a structured
// JSON snapshot that can be imported back, and a flat table for humans.
// It also drives the manual backup/restore cycle.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"finledger/internal/core"
	"finledger/internal/log"
	"finledger/internal/storage"
)

// tableDateFormat is the timestamp layout used in tabular exports.
const tableDateFormat = "2006-01-02 15:04"

// Snapshot is the re-importable export format: the whole ledger plus
// all budgets in one document.
type Snapshot struct {
	ExportedAt   time.Time          `json:"exported_at"`
	Transactions []core.Transaction `json:"transactions"`
	Budgets      []core.Budget      `json:"budgets"`
}

type Exporter struct {
	store  storage.Repository
	logger *log.Logger
	now    func() time.Time
}

func NewExporter(store storage.Repository, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Exporter{
		store:  store,
		logger: logger.WithComponent(log.ComponentExport),
		now:    time.Now,
	}
}

// JSON writes a structured snapshot of the ledger to path.
func (e *Exporter) JSON(ctx context.Context, path string) error {
	snap, err := e.snapshot(ctx)
	if err != nil {
		return err
	}
	if err := writeJSONFile(path, snap); err != nil {
		return err
	}

	e.logger.InfoContext(ctx, "Ledger exported",
		log.FieldPath, path,
		"transactions", len(snap.Transactions),
		"budgets", len(snap.Budgets))
	return nil
}

// Table writes the ledger as an aligned text table with the columns
// ID, Date, Type, Amount, Category, Description.
func (e *Exporter) Table(ctx context.Context, path string) error {
	txns, err := e.store.Transactions(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := tabwriter.NewWriter(f, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDate\tType\tAmount\tCategory\tDescription")
	for _, t := range txns {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.Date.Format(tableDateFormat),
			t.Type,
			t.Amount,
			t.Category,
			t.Description)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush export table: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}

	e.logger.InfoContext(ctx, "Ledger exported as table",
		log.FieldPath, path,
		"transactions", len(txns))
	return nil
}

// BackupTo writes a timestamped snapshot directory under dir and
// returns its path. The transactions and budgets files are independent,
// so they are written concurrently.
func (e *Exporter) BackupTo(ctx context.Context, dir string) (string, error) {
	snap, err := e.snapshot(ctx)
	if err != nil {
		return "", err
	}

	target := filepath.Join(dir, e.now().Format("20060102-150405"))
	if err := os.MkdirAll(target, 0755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return writeJSONFile(filepath.Join(target, "transactions.json"), snap.Transactions)
	})
	g.Go(func() error {
		return writeJSONFile(filepath.Join(target, "budgets.json"), snap.Budgets)
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	e.logger.InfoContext(ctx, "Backup written", log.FieldPath, target)
	return target, nil
}

// Restore replaces the current ledger and budgets with the contents of
// a structured JSON export written by JSON.
func (e *Exporter) Restore(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	if err := e.store.SaveAllTransactions(ctx, snap.Transactions); err != nil {
		return fmt.Errorf("restore transactions: %w", err)
	}

	// Budgets: clear what exists, then replay the snapshot.
	existing, err := e.store.Budgets(ctx)
	if err != nil {
		return fmt.Errorf("load budgets: %w", err)
	}
	for _, b := range existing {
		if err := e.store.DeleteBudget(ctx, b.Category); err != nil {
			return fmt.Errorf("clear budget %q: %w", b.Category, err)
		}
	}
	for _, b := range snap.Budgets {
		if err := e.store.SaveBudget(ctx, b); err != nil {
			return fmt.Errorf("restore budget %q: %w", b.Category, err)
		}
	}

	e.logger.InfoContext(ctx, "Ledger restored",
		log.FieldPath, path,
		"transactions", len(snap.Transactions),
		"budgets", len(snap.Budgets))
	return nil
}

func (e *Exporter) snapshot(ctx context.Context) (Snapshot, error) {
	txns, err := e.store.Transactions(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load transactions: %w", err)
	}
	budgets, err := e.store.Budgets(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load budgets: %w", err)
	}
	return Snapshot{
		ExportedAt:   e.now().UTC(),
		Transactions: txns,
		Budgets:      budgets,
	}, nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
