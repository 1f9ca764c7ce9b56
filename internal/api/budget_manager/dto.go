package budget_manager

import (
	"github.com/shopspring/decimal"
)

const (
	MonthLayout      = "2006-01-02"
	DefaultPageLimit = 100
	MaxPageLimit     = 100
)

type CreateBudgetRequest struct {
	Category string           `json:"category" validate:"required,max=100"`
	Amount   *decimal.Decimal `json:"amount" validate:"required"`
	Month    string           `json:"month" validate:"required,datetime=2006-01-02"`
}

type UpdateBudgetRequest struct {
	Category *string          `json:"category" validate:"omitempty,min=1,max=100"`
	Amount   *decimal.Decimal `json:"amount"`
	Month    *string          `json:"month" validate:"omitempty,datetime=2006-01-02"`
}

type ListBudgetsQuery struct {
	Skip  int `query:"skip" validate:"min=0"`
	Limit int `query:"limit" validate:"min=0"`
	Month int `query:"month" validate:"omitempty,min=1,max=12"`
	Year  int `query:"year" validate:"omitempty,min=2000,max=2100"`
}

type BudgetResponse struct {
	ID       int64           `json:"id"`
	UserID   int64           `json:"user_id"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Month    string          `json:"month"`
}
