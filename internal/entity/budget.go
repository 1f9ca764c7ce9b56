package entity

import (
	"cozycash/internal/api/budget_manager"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID       int64           `json:"id"`
	UserID   int64           `json:"user_id"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Month    time.Time       `json:"month"`
}

// NormalizeMonth maps any instant to the first day of its UTC month, at
// midnight. Budgets are only ever stored in this form.
func NormalizeMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func ParseBudgetMonth(value string) (time.Time, error) {
	t, err := time.Parse(budget_manager.MonthLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, budget_manager.ErrInvalidMonth
	}

	return NormalizeMonth(t), nil
}

func (b *Budget) Validate() error {
	if !isValidAmount(b.Amount) {
		return budget_manager.ErrInvalidAmount
	}

	if strings.TrimSpace(b.Category) == "" {
		return budget_manager.ErrInvalidCategory
	}

	if b.Month.IsZero() || !b.Month.Equal(NormalizeMonth(b.Month)) {
		return budget_manager.ErrInvalidMonth
	}

	return nil
}

type BudgetPatch struct {
	Category *string
	Amount   *decimal.Decimal
	Month    *time.Time
}

func (p BudgetPatch) IsEmpty() bool {
	return p.Category == nil && p.Amount == nil && p.Month == nil
}

func (p BudgetPatch) Apply(b *Budget) {
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	if p.Month != nil {
		b.Month = NormalizeMonth(*p.Month)
	}
}

// BudgetFilter narrows a budget listing to one month or one year.
type BudgetFilter struct {
	Month int
	Year  int
}
