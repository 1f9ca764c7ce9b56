package expenseHandler

import (
	expenseService "cozycash/internal/api/expense/service"
	"cozycash/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ExpenseHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	expenseService expenseService.IExpenseService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	expenseService expenseService.IExpenseService,
) *ExpenseHandler {
	return &ExpenseHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		expenseService: expenseService,
	}
}

func (h *ExpenseHandler) Start(srv fiber.Router) {
	expenses := srv.Group("/expenses", h.middleware.NewTokenMiddleware)

	expenses.Get("/", h.ListExpenses)
	expenses.Post("/", h.CreateExpense)
	expenses.Get("/:id", h.GetExpense)
	expenses.Put("/:id", h.UpdateExpense)
	expenses.Patch("/:id", h.UpdateExpense)
	expenses.Delete("/:id", h.DeleteExpense)
}
