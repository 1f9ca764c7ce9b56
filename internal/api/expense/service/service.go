package expenseService

import (
	"context"
	"cozycash/internal/api/expense"
	expenseRepository "cozycash/internal/api/expense/repository"
	"cozycash/internal/entity"
	"time"

	"github.com/sirupsen/logrus"
)

type IExpenseService interface {
	CreateExpense(ctx context.Context, userID int64, req expense.CreateExpenseRequest) (entity.Expense, error)
	GetExpense(ctx context.Context, userID, id int64) (entity.Expense, error)
	ListExpenses(ctx context.Context, userID int64, skip, limit int) ([]entity.Expense, error)
	UpdateExpense(ctx context.Context, userID, id int64, patch entity.ExpensePatch) (entity.Expense, error)
	DeleteExpense(ctx context.Context, userID, id int64) error
}

type expenseService struct {
	log               *logrus.Logger
	expenseRepository expenseRepository.Repository
	now               func() time.Time
}

func NewExpenseService(log *logrus.Logger, er expenseRepository.Repository) IExpenseService {
	return &expenseService{
		log:               log,
		expenseRepository: er,
		now:               time.Now,
	}
}
