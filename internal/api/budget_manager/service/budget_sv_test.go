package budgetService

import (
	"context"
	"cozycash/database/databasetest"
	"cozycash/internal/api/budget_manager"
	budgetRepository "cozycash/internal/api/budget_manager/repository"
	"cozycash/internal/entity"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BudgetServiceTestSuite struct {
	suite.Suite
	service *budgetService
	ctx     context.Context
	alice   int64
}

func (s *BudgetServiceTestSuite) SetupTest() {
	db := databasetest.NewSQLite(s.T())
	log := databasetest.Logger()

	s.ctx = context.Background()
	s.alice = databasetest.InsertUser(s.T(), db, "alice@example.com")
	s.service = NewBudgetService(log, budgetRepository.New(db, log)).(*budgetService)
	s.service.now = func() time.Time { return time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC) }
}

func amount(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func (s *BudgetServiceTestSuite) TestCreateNormalizesMonthAndDetectsConflict() {
	created, err := s.service.CreateBudget(s.ctx, s.alice, budget_manager.CreateBudgetRequest{
		Category: "Food",
		Amount:   amount("300"),
		Month:    "2024-05-25",
	})
	s.Require().NoError(err)
	s.Equal(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), created.Month)

	_, err = s.service.CreateBudget(s.ctx, s.alice, budget_manager.CreateBudgetRequest{
		Category: "Food",
		Amount:   amount("100"),
		Month:    "2024-05-01",
	})
	s.ErrorIs(err, budget_manager.ErrBudgetAlreadyExists)
}

func (s *BudgetServiceTestSuite) TestCreateRejectsInvalidInput() {
	_, err := s.service.CreateBudget(s.ctx, s.alice, budget_manager.CreateBudgetRequest{
		Category: "Food",
		Amount:   amount("0"),
		Month:    "2024-05-01",
	})
	s.ErrorIs(err, budget_manager.ErrInvalidAmount)

	_, err = s.service.CreateBudget(s.ctx, s.alice, budget_manager.CreateBudgetRequest{
		Category: "Food",
		Amount:   amount("10"),
		Month:    "May 2024",
	})
	s.ErrorIs(err, budget_manager.ErrInvalidMonth)
}

func (s *BudgetServiceTestSuite) TestListMonthWithoutYearUsesCurrentYear() {
	for _, month := range []string{"2023-05-01", "2024-05-01", "2024-06-01"} {
		_, err := s.service.CreateBudget(s.ctx, s.alice, budget_manager.CreateBudgetRequest{
			Category: "Food",
			Amount:   amount("10"),
			Month:    month,
		})
		s.Require().NoError(err)
	}

	may, err := s.service.ListBudgets(s.ctx, s.alice, entity.BudgetFilter{Month: 5}, 0, 0)
	s.Require().NoError(err)
	s.Require().Len(may, 1)
	s.Equal(2024, may[0].Month.Year())

	all, err := s.service.ListBudgets(s.ctx, s.alice, entity.BudgetFilter{}, 0, 0)
	s.Require().NoError(err)
	s.Len(all, 3)

	lastYear, err := s.service.ListBudgets(s.ctx, s.alice, entity.BudgetFilter{Year: 2023}, 0, 0)
	s.Require().NoError(err)
	s.Len(lastYear, 1)
}

func (s *BudgetServiceTestSuite) TestUpdatePatchAndConflict() {
	_, err := s.service.CreateBudget(s.ctx, s.alice, budget_manager.CreateBudgetRequest{
		Category: "Food", Amount: amount("10"), Month: "2024-05-01",
	})
	s.Require().NoError(err)
	other, err := s.service.CreateBudget(s.ctx, s.alice, budget_manager.CreateBudgetRequest{
		Category: "Rent", Amount: amount("900"), Month: "2024-05-01",
	})
	s.Require().NoError(err)

	updated, err := s.service.UpdateBudget(s.ctx, s.alice, other.ID, entity.BudgetPatch{Amount: amount("950")})
	s.Require().NoError(err)
	s.Equal("Rent", updated.Category)
	s.True(decimal.NewFromInt(950).Equal(updated.Amount))

	food := "Food"
	_, err = s.service.UpdateBudget(s.ctx, s.alice, other.ID, entity.BudgetPatch{Category: &food})
	s.ErrorIs(err, budget_manager.ErrBudgetAlreadyExists)

	stored, err := s.service.GetBudget(s.ctx, s.alice, other.ID)
	s.Require().NoError(err)
	s.Equal("Rent", stored.Category)

	_, err = s.service.UpdateBudget(s.ctx, s.alice, 9999, entity.BudgetPatch{Amount: amount("1")})
	s.ErrorIs(err, budget_manager.ErrBudgetNotFound)
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
