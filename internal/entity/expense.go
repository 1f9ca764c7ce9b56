package entity

import (
	"cozycash/internal/api/expense"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
}

func (e *Expense) Validate() error {
	if !isValidAmount(e.Amount) {
		return expense.ErrInvalidAmount
	}

	if strings.TrimSpace(e.Description) == "" {
		return expense.ErrInvalidDescription
	}

	if strings.TrimSpace(e.Category) == "" {
		return expense.ErrInvalidCategory
	}

	return nil
}

// ExpensePatch carries a partial update. Nil fields are left untouched.
type ExpensePatch struct {
	Amount      *decimal.Decimal
	Description *string
	Category    *string
	Date        *time.Time
}

func (p ExpensePatch) IsEmpty() bool {
	return p.Amount == nil && p.Description == nil && p.Category == nil && p.Date == nil
}

func (p ExpensePatch) Apply(e *Expense) {
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = p.Date.UTC()
	}
}
