package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type BudgetStatus string

const (
	StatusSafe    BudgetStatus = "Safe"
	StatusWarning BudgetStatus = "Warning"
	StatusDanger  BudgetStatus = "Danger"
)

const (
	NoDataCategory = "No Data"

	// DefaultWarningThreshold is the share of the budget below which the
	// remaining amount is reported as a warning.
	DefaultWarningThreshold = 0.2
)

// Period is an optional month/year filter. Zero fields are absent.
type Period struct {
	Month int
	Year  int
}

func (p Period) IsZero() bool {
	return p.Month == 0 && p.Year == 0
}

// Window is a half-open [From, To) range in UTC.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// Window resolves p against now. A month without a year falls in the year of
// now; a year alone covers the whole year. ok is false when p is zero and
// therefore covers the whole history.
func (p Period) Window(now time.Time) (w Window, ok bool) {
	if p.IsZero() {
		return Window{}, false
	}

	year := p.Year
	if year == 0 {
		year = now.UTC().Year()
	}

	if p.Month == 0 {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return Window{From: from, To: from.AddDate(1, 0, 0)}, true
	}

	from := time.Date(year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	return Window{From: from, To: from.AddDate(0, 1, 0)}, true
}

type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

type CategoryShare struct {
	Category   string
	Amount     decimal.Decimal
	Percentage decimal.Decimal
}

type ExpensePoint struct {
	Date   time.Time
	Amount decimal.Decimal
}

type DailyTotal struct {
	Date   time.Time
	Amount decimal.Decimal
}

type DashboardSummary struct {
	TotalSpent      decimal.Decimal
	TotalBudget     decimal.Decimal
	RemainingBudget decimal.Decimal
	TopCategory     string
	Status          BudgetStatus
}

// DeriveStatus classifies what is left of budget after spent.
func DeriveStatus(budget, spent decimal.Decimal, threshold float64) BudgetStatus {
	remaining := budget.Sub(spent)
	if remaining.IsNegative() {
		return StatusDanger
	}

	if budget.IsPositive() && remaining.LessThan(budget.Mul(decimal.NewFromFloat(threshold))) {
		return StatusWarning
	}

	return StatusSafe
}
