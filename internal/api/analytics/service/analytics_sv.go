package analyticsService

import (
	"context"
	"cozycash/internal/entity"
	contextPkg "cozycash/pkg/context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var hundred = decimal.NewFromInt(100)

func (s *analyticsService) TotalSpent(ctx context.Context, userID int64, period entity.Period) (decimal.Decimal, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.analyticsRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return decimal.Zero, err
	}

	total, err := repo.Analytics.SumExpenses(ctx, userID, s.window(period))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sum expenses")
		return decimal.Zero, err
	}

	return total, nil
}

func (s *analyticsService) TotalBudget(ctx context.Context, userID int64, period entity.Period) (decimal.Decimal, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.analyticsRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return decimal.Zero, err
	}

	total, err := repo.Analytics.SumBudgets(ctx, userID, s.window(period))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sum budgets")
		return decimal.Zero, err
	}

	return total, nil
}

// TopCategory returns the category with the largest total, or NoDataCategory
// when the period holds no expenses. Equal totals resolve alphabetically.
func (s *analyticsService) TopCategory(ctx context.Context, userID int64, period entity.Period) (string, error) {
	totals, err := s.sortedCategoryTotals(ctx, userID, period)
	if err != nil {
		return "", err
	}

	if len(totals) == 0 {
		return entity.NoDataCategory, nil
	}

	return totals[0].Category, nil
}

// CategoryBreakdown returns each category's total and its share of the
// period's spending, in percent rounded half-up to one decimal.
func (s *analyticsService) CategoryBreakdown(ctx context.Context, userID int64, period entity.Period) ([]entity.CategoryShare, error) {
	totals, err := s.sortedCategoryTotals(ctx, userID, period)
	if err != nil {
		return nil, err
	}

	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Amount)
	}

	shares := make([]entity.CategoryShare, 0, len(totals))
	for _, t := range totals {
		shares = append(shares, entity.CategoryShare{
			Category:   t.Category,
			Amount:     t.Amount,
			Percentage: percentage(t.Amount, sum),
		})
	}

	return shares, nil
}

// DailySpending sums expenses per UTC calendar day, oldest day first.
func (s *analyticsService) DailySpending(ctx context.Context, userID int64, period entity.Period) ([]entity.DailyTotal, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.analyticsRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	points, err := repo.Analytics.ExpensePoints(ctx, userID, s.window(period))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to load expense points")
		return nil, err
	}

	byDay := make(map[time.Time]decimal.Decimal)
	for _, p := range points {
		d := p.Date.UTC()
		key := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		byDay[key] = byDay[key].Add(p.Amount)
	}

	daily := make([]entity.DailyTotal, 0, len(byDay))
	for day, amount := range byDay {
		daily = append(daily, entity.DailyTotal{Date: day, Amount: amount})
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date.Before(daily[j].Date)
	})

	return daily, nil
}

// Summary runs the three aggregations concurrently and derives the status
// from their results.
func (s *analyticsService) Summary(ctx context.Context, userID int64, period entity.Period) (entity.DashboardSummary, error) {
	var spent, budget decimal.Decimal
	var top string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		spent, err = s.TotalSpent(gctx, userID, period)
		return err
	})
	g.Go(func() (err error) {
		budget, err = s.TotalBudget(gctx, userID, period)
		return err
	})
	g.Go(func() (err error) {
		top, err = s.TopCategory(gctx, userID, period)
		return err
	})
	if err := g.Wait(); err != nil {
		return entity.DashboardSummary{}, err
	}

	return entity.DashboardSummary{
		TotalSpent:      spent,
		TotalBudget:     budget,
		RemainingBudget: budget.Sub(spent),
		TopCategory:     top,
		Status:          entity.DeriveStatus(budget, spent, s.warningThreshold),
	}, nil
}

func (s *analyticsService) sortedCategoryTotals(ctx context.Context, userID int64, period entity.Period) ([]entity.CategoryTotal, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.analyticsRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	totals, err := repo.Analytics.CategoryTotals(ctx, userID, s.window(period))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to load category totals")
		return nil, err
	}

	sort.Slice(totals, func(i, j int) bool {
		if c := totals[i].Amount.Cmp(totals[j].Amount); c != 0 {
			return c > 0
		}
		return totals[i].Category < totals[j].Category
	})

	return totals, nil
}

func (s *analyticsService) window(period entity.Period) *entity.Window {
	w, ok := period.Window(s.now())
	if !ok {
		return nil
	}
	return &w
}

func percentage(amount, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return amount.Mul(hundred).Div(total).Round(1)
}
