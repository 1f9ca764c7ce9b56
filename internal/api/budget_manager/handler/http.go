package budgetHandler

import (
	budgetService "cozycash/internal/api/budget_manager/service"
	"cozycash/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type BudgetHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	budgetService budgetService.IBudgetService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	budgetService budgetService.IBudgetService,
) *BudgetHandler {
	return &BudgetHandler{
		log:           log,
		validator:     validate,
		middleware:    middleware,
		budgetService: budgetService,
	}
}

func (h *BudgetHandler) Start(srv fiber.Router) {
	budgets := srv.Group("/budgets", h.middleware.NewTokenMiddleware)

	budgets.Get("/", h.ListBudgets)
	budgets.Post("/", h.CreateBudget)
	budgets.Get("/:id", h.GetBudget)
	budgets.Put("/:id", h.UpdateBudget)
	budgets.Patch("/:id", h.UpdateBudget)
	budgets.Delete("/:id", h.DeleteBudget)
}
