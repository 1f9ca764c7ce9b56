package expenseService

import (
	"context"
	"cozycash/internal/api/expense"
	"cozycash/internal/entity"
	contextPkg "cozycash/pkg/context"
	"errors"

	"github.com/sirupsen/logrus"
)

func (s *expenseService) CreateExpense(ctx context.Context, userID int64, req expense.CreateExpenseRequest) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Expense{}, err
	}

	exp := entity.Expense{
		UserID:      userID,
		Description: req.Description,
		Category:    req.Category,
		Date:        s.now().UTC(),
	}
	if req.Amount != nil {
		exp.Amount = *req.Amount
	}
	if req.Date != nil {
		exp.Date = req.Date.UTC()
	}

	if err := exp.Validate(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid expense data")
		return entity.Expense{}, err
	}

	created, err := repo.Expenses.CreateExpense(ctx, exp)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create expense")
		return entity.Expense{}, expense.ErrCreateExpense
	}

	return created, nil
}

func (s *expenseService) GetExpense(ctx context.Context, userID, id int64) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Expense{}, err
	}

	exp, err := repo.Expenses.GetExpenseByID(ctx, userID, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"expense_id": id,
			"error":      err.Error(),
		}).Warn("Failed to get expense by ID")
		return entity.Expense{}, err
	}

	return exp, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, userID int64, skip, limit int) ([]entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	skip, limit = clampPage(skip, limit)

	expenses, err := repo.Expenses.ListExpenses(ctx, userID, skip, limit)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to list expenses")
		return nil, err
	}

	return expenses, nil
}

// UpdateExpense applies patch to the caller's expense inside one
// transaction. Unset patch fields keep their stored value.
func (s *expenseService) UpdateExpense(ctx context.Context, userID, id int64, patch entity.ExpensePatch) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Expense{}, err
	}
	defer func() {
		if err != nil {
			if rbErr := repo.Rollback(); rbErr != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      rbErr.Error(),
				}).Error("Failed to rollback transaction")
			}
		}
	}()

	var exp entity.Expense
	exp, err = repo.Expenses.GetExpenseByID(ctx, userID, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"expense_id": id,
			"error":      err.Error(),
		}).Warn("Failed to get expense for update")
		return entity.Expense{}, err
	}

	patch.Apply(&exp)

	if err = exp.Validate(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid expense data")
		return entity.Expense{}, err
	}

	if err = repo.Expenses.UpdateExpense(ctx, exp); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to update expense")
		if errors.Is(err, expense.ErrExpenseNotFound) {
			return entity.Expense{}, err
		}
		return entity.Expense{}, expense.ErrUpdateExpense
	}

	if err = repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return entity.Expense{}, expense.ErrUpdateExpense
	}

	return exp, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, userID, id int64) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	if err := repo.Expenses.DeleteExpense(ctx, userID, id); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"expense_id": id,
			"error":      err.Error(),
		}).Warn("Failed to delete expense")
		if errors.Is(err, expense.ErrExpenseNotFound) {
			return err
		}
		return expense.ErrDeleteExpense
	}

	return nil
}

func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = expense.DefaultPageLimit
	}
	if limit > expense.MaxPageLimit {
		limit = expense.MaxPageLimit
	}
	return skip, limit
}
