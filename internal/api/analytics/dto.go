package analytics

import "github.com/shopspring/decimal"

type PeriodQuery struct {
	Month int `query:"month" validate:"omitempty,min=1,max=12"`
	Year  int `query:"year" validate:"omitempty,min=2000,max=2100"`
}

type DashboardSummaryResponse struct {
	TotalSpent      decimal.Decimal `json:"total_spent"`
	TotalBudget     decimal.Decimal `json:"total_budget"`
	RemainingBudget decimal.Decimal `json:"remaining_budget"`
	TopCategory     string          `json:"top_category"`
	Status          string          `json:"status"`
}

type CategoryData struct {
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Percentage  float64         `json:"percentage"`
}

type CategoryBreakdownResponse struct {
	Data []CategoryData `json:"data"`
}

type TrendDataPoint struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type SpendingTrendResponse struct {
	Data []TrendDataPoint `json:"data"`
}
