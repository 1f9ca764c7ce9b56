package budgetService

import (
	"context"
	"cozycash/internal/api/budget_manager"
	"cozycash/internal/entity"
	contextPkg "cozycash/pkg/context"
	"errors"

	"github.com/sirupsen/logrus"
)

func (s *budgetService) CreateBudget(ctx context.Context, userID int64, req budget_manager.CreateBudgetRequest) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Budget{}, err
	}

	month, err := entity.ParseBudgetMonth(req.Month)
	if err != nil {
		return entity.Budget{}, err
	}

	budget := entity.Budget{
		UserID:   userID,
		Category: req.Category,
		Month:    month,
	}
	if req.Amount != nil {
		budget.Amount = *req.Amount
	}

	if err := budget.Validate(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid budget data")
		return entity.Budget{}, err
	}

	created, err := repo.Budget.CreateBudget(ctx, budget)
	if err != nil {
		if errors.Is(err, budget_manager.ErrBudgetAlreadyExists) {
			return entity.Budget{}, err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create budget")
		return entity.Budget{}, budget_manager.ErrCreateBudget
	}

	return created, nil
}

func (s *budgetService) GetBudget(ctx context.Context, userID, id int64) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Budget{}, err
	}

	budget, err := repo.Budget.GetBudgetByID(ctx, userID, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"budget_id":  id,
			"error":      err.Error(),
		}).Warn("Failed to get budget by ID")
		return entity.Budget{}, err
	}

	return budget, nil
}

// ListBudgets returns the caller's budgets, optionally narrowed to one month
// or one year. A month without a year refers to the current year.
func (s *budgetService) ListBudgets(ctx context.Context, userID int64, filter entity.BudgetFilter, skip, limit int) ([]entity.Budget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	var window *entity.Window
	if w, ok := (entity.Period{Month: filter.Month, Year: filter.Year}).Window(s.now()); ok {
		window = &w
	}

	skip, limit = clampPage(skip, limit)

	budgets, err := repo.Budget.ListBudgets(ctx, userID, window, skip, limit)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to list budgets")
		return nil, err
	}

	return budgets, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, userID, id int64, patch entity.BudgetPatch) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.budgetRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Budget{}, err
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

	var budget entity.Budget
	budget, err = repo.Budget.GetBudgetByID(ctx, userID, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"budget_id":  id,
			"error":      err.Error(),
		}).Warn("Failed to get budget for update")
		return entity.Budget{}, err
	}

	patch.Apply(&budget)

	if err = budget.Validate(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid budget data")
		return entity.Budget{}, err
	}

	if err = repo.Budget.UpdateBudget(ctx, budget); err != nil {
		if errors.Is(err, budget_manager.ErrBudgetAlreadyExists) || errors.Is(err, budget_manager.ErrBudgetNotFound) {
			return entity.Budget{}, err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to update budget")
		return entity.Budget{}, budget_manager.ErrUpdateBudget
	}

	if err = repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return entity.Budget{}, budget_manager.ErrUpdateBudget
	}

	return budget, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, userID, id int64) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	if err := repo.Budget.DeleteBudget(ctx, userID, id); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"budget_id":  id,
			"error":      err.Error(),
		}).Warn("Failed to delete budget")
		if errors.Is(err, budget_manager.ErrBudgetNotFound) {
			return err
		}
		return budget_manager.ErrDeleteBudget
	}

	return nil
}

func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = budget_manager.DefaultPageLimit
	}
	if limit > budget_manager.MaxPageLimit {
		limit = budget_manager.MaxPageLimit
	}
	return skip, limit
}
