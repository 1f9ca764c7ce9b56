package analyticsHandler

import (
	analyticsService "cozycash/internal/api/analytics/service"
	"cozycash/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AnalyticsHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	analyticsService analyticsService.IAnalyticsService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	analyticsService analyticsService.IAnalyticsService,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		analyticsService: analyticsService,
	}
}

func (h *AnalyticsHandler) Start(srv fiber.Router) {
	analytics := srv.Group("/analytics", h.middleware.NewTokenMiddleware)

	analytics.Get("/summary", h.GetSummary)
	analytics.Get("/category-breakdown", h.GetCategoryBreakdown)
	analytics.Get("/spending-trend", h.GetSpendingTrend)
}
