package analyticsHandler

import (
	"context"
	"cozycash/internal/api/analytics"
	"cozycash/internal/api/auth"
	"cozycash/internal/entity"
	contextPkg "cozycash/pkg/context"
	"cozycash/pkg/handlerUtil"
	jwtPkg "cozycash/pkg/jwt"
	"cozycash/pkg/log"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

func (h *AnalyticsHandler) GetSummary(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing dashboard summary request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, auth.ErrUnauthorized.Error())
	}

	period, err := h.parsePeriod(ctx)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_period")
	}

	summary, err := h.analyticsService.Summary(c, userData.ID, period)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "dashboard_summary")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, analytics.DashboardSummaryResponse{
			TotalSpent:      summary.TotalSpent,
			TotalBudget:     summary.TotalBudget,
			RemainingBudget: summary.RemainingBudget,
			TopCategory:     summary.TopCategory,
			Status:          string(summary.Status),
		})
	}
}

func (h *AnalyticsHandler) GetCategoryBreakdown(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, auth.ErrUnauthorized.Error())
	}

	period, err := h.parsePeriod(ctx)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_period")
	}

	shares, err := h.analyticsService.CategoryBreakdown(c, userData.ID, period)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "category_breakdown")
	}

	data := make([]analytics.CategoryData, 0, len(shares))
	for _, share := range shares {
		data = append(data, analytics.CategoryData{
			Category:    share.Category,
			TotalAmount: share.Amount,
			Percentage:  share.Percentage.InexactFloat64(),
		})
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, analytics.CategoryBreakdownResponse{Data: data})
	}
}

func (h *AnalyticsHandler) GetSpendingTrend(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, auth.ErrUnauthorized.Error())
	}

	period, err := h.parsePeriod(ctx)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_period")
	}

	daily, err := h.analyticsService.DailySpending(c, userData.ID, period)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "spending_trend")
	}

	data := make([]analytics.TrendDataPoint, 0, len(daily))
	for _, d := range daily {
		data = append(data, analytics.TrendDataPoint{
			Date:   d.Date.Format(dateLayout),
			Amount: d.Amount,
		})
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, analytics.SpendingTrendResponse{Data: data})
	}
}

// parsePeriod reads the optional month and year query parameters. Values
// out of range are rejected rather than clamped.
func (h *AnalyticsHandler) parsePeriod(ctx *fiber.Ctx) (entity.Period, error) {
	var query analytics.PeriodQuery
	if err := ctx.QueryParser(&query); err != nil {
		if ctx.Query("month") != "" && ctx.QueryInt("month", -1) == -1 {
			return entity.Period{}, analytics.ErrInvalidMonth
		}
		return entity.Period{}, analytics.ErrInvalidYear
	}

	if ctx.Query("month") != "" && query.Month == 0 {
		return entity.Period{}, analytics.ErrInvalidMonth
	}
	if ctx.Query("year") != "" && query.Year == 0 {
		return entity.Period{}, analytics.ErrInvalidYear
	}

	if err := h.validator.Struct(query); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 && validationErrors[0].Field() == "Month" {
			return entity.Period{}, analytics.ErrInvalidMonth
		}
		return entity.Period{}, analytics.ErrInvalidYear
	}

	return entity.Period{Month: query.Month, Year: query.Year}, nil
}
