package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	Money struct {
		Cents int64
	}

	// Transaction is a single ledger entry. The ID is assigned by the
	// store on insert and never changes afterwards.
	Transaction struct {
		ID          int64           `json:"id"`
		Date        time.Time       `json:"date"`
		Amount      Money           `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Type        TransactionType `json:"type"`
	}

	// Budget is a monthly spending ceiling for one category. There is at
	// most one budget per category; saving again replaces it.
	Budget struct {
		Category     string    `json:"category"`
		MonthlyLimit Money     `json:"monthly_limit"`
		CreatedAt    time.Time `json:"created_at"`
	}
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidMonth        = errors.New("invalid month")
	ErrEmptyCategory       = errors.New("empty category")
	ErrInvalidLimit        = errors.New("invalid budget limit")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBudgetNotFound      = errors.New("budget not found")
)

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	}
	return ErrInvalidType
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.MonthlyLimit.Cents <= 0 {
		return ErrInvalidLimit
	}
	return nil
}

// ValidMonth reports whether m is a calendar month in 1..12.
func ValidMonth(m int) bool {
	return m >= 1 && m <= 12
}
