package analyticsService

import (
	"context"
	analyticsRepository "cozycash/internal/api/analytics/repository"
	"cozycash/internal/entity"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// IAnalyticsService answers questions over one user's ledger. Every method
// takes an optional period; a zero period covers the whole history.
type IAnalyticsService interface {
	TotalSpent(ctx context.Context, userID int64, period entity.Period) (decimal.Decimal, error)
	TotalBudget(ctx context.Context, userID int64, period entity.Period) (decimal.Decimal, error)
	TopCategory(ctx context.Context, userID int64, period entity.Period) (string, error)
	CategoryBreakdown(ctx context.Context, userID int64, period entity.Period) ([]entity.CategoryShare, error)
	DailySpending(ctx context.Context, userID int64, period entity.Period) ([]entity.DailyTotal, error)
	Summary(ctx context.Context, userID int64, period entity.Period) (entity.DashboardSummary, error)
}

type analyticsService struct {
	log                 *logrus.Logger
	analyticsRepository analyticsRepository.Repository
	warningThreshold    float64
	now                 func() time.Time
}

func NewAnalyticsService(log *logrus.Logger, ar analyticsRepository.Repository, warningThreshold float64) IAnalyticsService {
	if warningThreshold <= 0 {
		warningThreshold = entity.DefaultWarningThreshold
	}

	return &analyticsService{
		log:                 log,
		analyticsRepository: ar,
		warningThreshold:    warningThreshold,
		now:                 time.Now,
	}
}
