package budgetRepository

import (
	"context"
	"cozycash/database/databasetest"
	"cozycash/internal/api/budget_manager"
	"cozycash/internal/entity"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BudgetRepositoryTestSuite struct {
	suite.Suite
	client Client
	ctx    context.Context
	alice  int64
	bob    int64
}

func (s *BudgetRepositoryTestSuite) SetupTest() {
	db := databasetest.NewSQLite(s.T())
	s.ctx = context.Background()
	s.alice = databasetest.InsertUser(s.T(), db, "alice@example.com")
	s.bob = databasetest.InsertUser(s.T(), db, "bob@example.com")

	client, err := New(db, databasetest.Logger()).NewClient(false)
	s.Require().NoError(err)
	s.client = client
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func (s *BudgetRepositoryTestSuite) create(userID int64, category string, month time.Time) (entity.Budget, error) {
	return s.client.Budget.CreateBudget(s.ctx, entity.Budget{
		UserID:   userID,
		Category: category,
		Amount:   decimal.NewFromInt(500),
		Month:    month,
	})
}

func (s *BudgetRepositoryTestSuite) TestSameMonthDifferentDayConflicts() {
	first, err := s.create(s.alice, "Food", day(2024, time.May, 1))
	s.Require().NoError(err)
	s.Equal(day(2024, time.May, 1), first.Month)

	_, err = s.create(s.alice, "Food", day(2024, time.May, 25))
	s.ErrorIs(err, budget_manager.ErrBudgetAlreadyExists)

	_, err = s.create(s.alice, "Transport", day(2024, time.May, 25))
	s.NoError(err, "other category")

	_, err = s.create(s.alice, "Food", day(2024, time.June, 1))
	s.NoError(err, "other month")

	_, err = s.create(s.bob, "Food", day(2024, time.May, 1))
	s.NoError(err, "other user")
}

func (s *BudgetRepositoryTestSuite) TestUpdateIntoExistingMonthConflicts() {
	_, err := s.create(s.alice, "Food", day(2024, time.May, 1))
	s.Require().NoError(err)
	june, err := s.create(s.alice, "Food", day(2024, time.June, 1))
	s.Require().NoError(err)

	june.Month = day(2024, time.May, 14)
	s.ErrorIs(s.client.Budget.UpdateBudget(s.ctx, june), budget_manager.ErrBudgetAlreadyExists)

	june.Month = day(2024, time.July, 3)
	june.Amount = decimal.RequireFromString("650.75")
	s.Require().NoError(s.client.Budget.UpdateBudget(s.ctx, june))

	got, err := s.client.Budget.GetBudgetByID(s.ctx, s.alice, june.ID)
	s.Require().NoError(err)
	s.Equal(day(2024, time.July, 1), got.Month)
	s.True(decimal.RequireFromString("650.75").Equal(got.Amount))
}

func (s *BudgetRepositoryTestSuite) TestOwnershipFilter() {
	budget, err := s.create(s.alice, "Food", day(2024, time.May, 1))
	s.Require().NoError(err)

	_, err = s.client.Budget.GetBudgetByID(s.ctx, s.bob, budget.ID)
	s.ErrorIs(err, budget_manager.ErrBudgetNotFound)

	budget.UserID = s.bob
	s.ErrorIs(s.client.Budget.UpdateBudget(s.ctx, budget), budget_manager.ErrBudgetNotFound)
	s.ErrorIs(s.client.Budget.DeleteBudget(s.ctx, s.bob, budget.ID), budget_manager.ErrBudgetNotFound)
	s.NoError(s.client.Budget.DeleteBudget(s.ctx, s.alice, budget.ID))
}

func (s *BudgetRepositoryTestSuite) TestListWithWindow() {
	for _, m := range []time.Month{time.April, time.May, time.June} {
		_, err := s.create(s.alice, "Food", day(2024, m, 1))
		s.Require().NoError(err)
	}
	_, err := s.create(s.bob, "Food", day(2024, time.May, 1))
	s.Require().NoError(err)

	all, err := s.client.Budget.ListBudgets(s.ctx, s.alice, nil, 0, 100)
	s.Require().NoError(err)
	s.Len(all, 3)
	s.Equal(day(2024, time.June, 1), all[0].Month)

	window, _ := entity.Period{Month: 5, Year: 2024}.Window(time.Now())
	may, err := s.client.Budget.ListBudgets(s.ctx, s.alice, &window, 0, 100)
	s.Require().NoError(err)
	s.Require().Len(may, 1)
	s.Equal(day(2024, time.May, 1), may[0].Month)
}

func TestBudgetRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetRepositoryTestSuite))
}
