package expense

import (
	"cozycash/pkg/response"
	"net/http"
)

var (
	ErrExpenseNotFound    = response.NewError(http.StatusNotFound, "expense not found")
	ErrInvalidAmount      = response.NewError(http.StatusBadRequest, "amount must be positive, below 100000000 and have at most two decimals")
	ErrInvalidDescription = response.NewError(http.StatusBadRequest, "description must not be empty")
	ErrInvalidCategory    = response.NewError(http.StatusBadRequest, "category must not be empty")
	ErrInvalidExpenseID   = response.NewError(http.StatusBadRequest, "invalid expense id")
	ErrCreateExpense      = response.NewError(http.StatusInternalServerError, "failed to create expense")
	ErrUpdateExpense      = response.NewError(http.StatusInternalServerError, "failed to update expense")
	ErrDeleteExpense      = response.NewError(http.StatusInternalServerError, "failed to delete expense")
)
