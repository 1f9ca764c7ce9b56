package expenseService

import (
	"context"
	"cozycash/database/databasetest"
	"cozycash/internal/api/expense"
	expenseRepository "cozycash/internal/api/expense/repository"
	"cozycash/internal/entity"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	service *expenseService
	ctx     context.Context
	now     time.Time
	alice   int64
	bob     int64
}

func (s *ExpenseServiceTestSuite) SetupTest() {
	db := databasetest.NewSQLite(s.T())
	log := databasetest.Logger()

	s.ctx = context.Background()
	s.now = time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	s.alice = databasetest.InsertUser(s.T(), db, "alice@example.com")
	s.bob = databasetest.InsertUser(s.T(), db, "bob@example.com")

	s.service = NewExpenseService(log, expenseRepository.New(db, log)).(*expenseService)
	s.service.now = func() time.Time { return s.now }
}

func amount(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func (s *ExpenseServiceTestSuite) TestCreateDefaultsDateToNow() {
	exp, err := s.service.CreateExpense(s.ctx, s.alice, expense.CreateExpenseRequest{
		Amount:      amount("42.10"),
		Description: "Groceries",
		Category:    "Food",
	})
	s.Require().NoError(err)
	s.True(s.now.Equal(exp.Date))
	s.Equal(s.alice, exp.UserID)
}

func (s *ExpenseServiceTestSuite) TestCreateRejectsInvalidAmount() {
	for _, v := range []string{"0", "-3", "1.005"} {
		_, err := s.service.CreateExpense(s.ctx, s.alice, expense.CreateExpenseRequest{
			Amount:      amount(v),
			Description: "x",
			Category:    "Food",
		})
		s.ErrorIs(err, expense.ErrInvalidAmount, v)
	}
}

func (s *ExpenseServiceTestSuite) TestUpdateAppliesOnlyProvidedFields() {
	date := time.Date(2024, time.April, 2, 8, 0, 0, 0, time.UTC)
	created, err := s.service.CreateExpense(s.ctx, s.alice, expense.CreateExpenseRequest{
		Amount:      amount("10"),
		Description: "Bus",
		Category:    "Transport",
		Date:        &date,
	})
	s.Require().NoError(err)

	updated, err := s.service.UpdateExpense(s.ctx, s.alice, created.ID, entity.ExpensePatch{Amount: amount("12.5")})
	s.Require().NoError(err)
	s.True(decimal.RequireFromString("12.5").Equal(updated.Amount))
	s.Equal("Bus", updated.Description)
	s.Equal("Transport", updated.Category)
	s.True(date.Equal(updated.Date))

	stored, err := s.service.GetExpense(s.ctx, s.alice, created.ID)
	s.Require().NoError(err)
	s.True(decimal.RequireFromString("12.5").Equal(stored.Amount))
	s.Equal("Bus", stored.Description)
}

func (s *ExpenseServiceTestSuite) TestUpdateValidatesMergedExpense() {
	created, err := s.service.CreateExpense(s.ctx, s.alice, expense.CreateExpenseRequest{
		Amount:      amount("10"),
		Description: "Bus",
		Category:    "Transport",
	})
	s.Require().NoError(err)

	blank := ""
	_, err = s.service.UpdateExpense(s.ctx, s.alice, created.ID, entity.ExpensePatch{Category: &blank})
	s.ErrorIs(err, expense.ErrInvalidCategory)

	stored, err := s.service.GetExpense(s.ctx, s.alice, created.ID)
	s.Require().NoError(err)
	s.Equal("Transport", stored.Category)
}

func (s *ExpenseServiceTestSuite) TestOtherUsersCannotTouchExpense() {
	created, err := s.service.CreateExpense(s.ctx, s.alice, expense.CreateExpenseRequest{
		Amount:      amount("10"),
		Description: "Bus",
		Category:    "Transport",
	})
	s.Require().NoError(err)

	_, err = s.service.GetExpense(s.ctx, s.bob, created.ID)
	s.ErrorIs(err, expense.ErrExpenseNotFound)

	_, err = s.service.UpdateExpense(s.ctx, s.bob, created.ID, entity.ExpensePatch{Amount: amount("1")})
	s.ErrorIs(err, expense.ErrExpenseNotFound)

	s.ErrorIs(s.service.DeleteExpense(s.ctx, s.bob, created.ID), expense.ErrExpenseNotFound)
	s.NoError(s.service.DeleteExpense(s.ctx, s.alice, created.ID))
}

func (s *ExpenseServiceTestSuite) TestListCapsLimit() {
	for i := 0; i < 3; i++ {
		_, err := s.service.CreateExpense(s.ctx, s.alice, expense.CreateExpenseRequest{
			Amount:      amount("1"),
			Description: "Snack",
			Category:    "Food",
		})
		s.Require().NoError(err)
	}

	list, err := s.service.ListExpenses(s.ctx, s.alice, -5, 1000)
	s.Require().NoError(err)
	s.Len(list, 3)

	skip, limit := clampPage(0, 1000)
	s.Equal(0, skip)
	s.Equal(expense.MaxPageLimit, limit)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
