package budgetService

import (
	"context"
	"cozycash/internal/api/budget_manager"
	budgetRepository "cozycash/internal/api/budget_manager/repository"
	"cozycash/internal/entity"
	"time"

	"github.com/sirupsen/logrus"
)

type IBudgetService interface {
	CreateBudget(ctx context.Context, userID int64, req budget_manager.CreateBudgetRequest) (entity.Budget, error)
	GetBudget(ctx context.Context, userID, id int64) (entity.Budget, error)
	ListBudgets(ctx context.Context, userID int64, filter entity.BudgetFilter, skip, limit int) ([]entity.Budget, error)
	UpdateBudget(ctx context.Context, userID, id int64, patch entity.BudgetPatch) (entity.Budget, error)
	DeleteBudget(ctx context.Context, userID, id int64) error
}

type budgetService struct {
	log              *logrus.Logger
	budgetRepository budgetRepository.Repository
	now              func() time.Time
}

func NewBudgetService(log *logrus.Logger, br budgetRepository.Repository) IBudgetService {
	return &budgetService{
		log:              log,
		budgetRepository: br,
		now:              time.Now,
	}
}
