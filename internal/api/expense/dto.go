package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 100
)

type CreateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Description string           `json:"description" validate:"required,max=255"`
	Category    string           `json:"category" validate:"required,max=100"`
	Date        *time.Time       `json:"date"`
}

// UpdateExpenseRequest leaves every field it does not carry untouched.
type UpdateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description" validate:"omitempty,min=1,max=255"`
	Category    *string          `json:"category" validate:"omitempty,min=1,max=100"`
	Date        *time.Time       `json:"date"`
}

type ListExpensesQuery struct {
	Skip  int `query:"skip" validate:"min=0"`
	Limit int `query:"limit" validate:"min=0"`
}

type ExpenseResponse struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
}
