package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"finledger/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the ledger in a single SQLite file. Ids come from
// AUTOINCREMENT, which never hands out an id below the highest ever
// used, so deletes cannot cause id reuse.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Transactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, amount_cents, category, description, type
		 FROM transactions ORDER BY id`)
	if err != nil {
		return nil, ioErr("query transactions", err)
	}
	defer rows.Close()

	var txns []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, ioErr("scan transaction", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, ioErr("iterate transactions", err)
	}
	return txns, nil
}

func (s *SQLiteStore) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (date, amount_cents, category, description, type)
		 VALUES (?, ?, ?, ?, ?)`,
		t.Date.UTC().Format(time.RFC3339Nano), t.Amount.Cents, t.Category, t.Description, string(t.Type))
	if err != nil {
		return core.Transaction{}, ioErr("insert transaction", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, ioErr("read inserted id", err)
	}
	t.ID = id

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"type", t.Type,
		"category", t.Category,
		"amount_cents", t.Amount.Cents)
	return t, nil
}

func (s *SQLiteStore) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions
		 SET date = ?, amount_cents = ?, category = ?, description = ?, type = ?
		 WHERE id = ?`,
		t.Date.UTC().Format(time.RFC3339Nano), t.Amount.Cents, t.Category, t.Description, string(t.Type), t.ID)
	if err != nil {
		return ioErr("update transaction", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return ioErr("update transaction", err)
	}
	if n == 0 {
		return fmt.Errorf("update transaction %d: %w", t.ID, core.ErrTransactionNotFound)
	}
	return nil
}

func (s *SQLiteStore) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return ioErr("delete transaction", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return ioErr("delete transaction", err)
	}
	if n == 0 {
		return fmt.Errorf("delete transaction %d: %w", id, core.ErrTransactionNotFound)
	}
	return nil
}

func (s *SQLiteStore) SaveAllTransactions(ctx context.Context, txns []core.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ioErr("begin replace ledger", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return ioErr("clear transactions", err)
	}
	for _, t := range txns {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (id, date, amount_cents, category, description, type)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, t.Date.UTC().Format(time.RFC3339Nano), t.Amount.Cents, t.Category, t.Description, string(t.Type))
		if err != nil {
			return ioErr("insert transaction", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return ioErr("commit replace ledger", err)
	}

	slog.InfoContext(ctx, "Ledger replaced", "count", len(txns))
	return nil
}

func (s *SQLiteStore) Budgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, monthly_limit_cents, created_at
		 FROM budgets ORDER BY category`)
	if err != nil {
		return nil, ioErr("query budgets", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, ioErr("scan budget", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, ioErr("iterate budgets", err)
	}
	return budgets, nil
}

func (s *SQLiteStore) Budget(ctx context.Context, category string) (core.Budget, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT category, monthly_limit_cents, created_at
		 FROM budgets WHERE category = ?`, category)

	var (
		b       core.Budget
		created string
	)
	err := row.Scan(&b.Category, &b.MonthlyLimit.Cents, &created)
	if err == sql.ErrNoRows {
		return core.Budget{}, fmt.Errorf("budget %q: %w", category, core.ErrBudgetNotFound)
	}
	if err != nil {
		return core.Budget{}, ioErr("query budget", err)
	}
	b.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return core.Budget{}, ioErr("parse budget created_at", err)
	}
	return b, nil
}

func (s *SQLiteStore) SaveBudget(ctx context.Context, b core.Budget) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (category, monthly_limit_cents, created_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(category) DO UPDATE SET
		   monthly_limit_cents = excluded.monthly_limit_cents,
		   created_at = excluded.created_at`,
		b.Category, b.MonthlyLimit.Cents, b.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return ioErr("save budget", err)
	}

	slog.InfoContext(ctx, "Budget saved",
		"category", b.Category,
		"limit_cents", b.MonthlyLimit.Cents)
	return nil
}

func (s *SQLiteStore) DeleteBudget(ctx context.Context, category string) error {
	// Deleting an absent budget is not an error.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE category = ?`, category); err != nil {
		return ioErr("delete budget", err)
	}
	return nil
}

func scanTransaction(rows *sql.Rows) (core.Transaction, error) {
	var (
		t    core.Transaction
		date string
		typ  string
	)
	if err := rows.Scan(&t.ID, &date, &t.Amount.Cents, &t.Category, &t.Description, &typ); err != nil {
		return core.Transaction{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, date)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Date = parsed
	t.Type = core.TransactionType(typ)
	return t, nil
}

func scanBudget(rows *sql.Rows) (core.Budget, error) {
	var (
		b       core.Budget
		created string
	)
	if err := rows.Scan(&b.Category, &b.MonthlyLimit.Cents, &created); err != nil {
		return core.Budget{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return core.Budget{}, err
	}
	b.CreatedAt = parsed
	return b, nil
}
