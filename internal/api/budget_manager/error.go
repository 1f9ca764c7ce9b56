package budget_manager

import (
	"cozycash/pkg/response"
	"net/http"
)

var (
	ErrBudgetNotFound      = response.NewError(http.StatusNotFound, "budget not found")
	ErrBudgetAlreadyExists = response.NewError(http.StatusConflict, "budget for this category and month already exists")
	ErrInvalidAmount       = response.NewError(http.StatusBadRequest, "amount must be positive, below 100000000 and have at most two decimals")
	ErrInvalidCategory     = response.NewError(http.StatusBadRequest, "category must not be empty")
	ErrInvalidMonth        = response.NewError(http.StatusBadRequest, "month must be a date formatted as YYYY-MM-DD")
	ErrInvalidBudgetID     = response.NewError(http.StatusBadRequest, "invalid budget id")
	ErrCreateBudget        = response.NewError(http.StatusInternalServerError, "failed to create budget")
	ErrUpdateBudget        = response.NewError(http.StatusInternalServerError, "failed to update budget")
	ErrDeleteBudget        = response.NewError(http.StatusInternalServerError, "failed to delete budget")
)
