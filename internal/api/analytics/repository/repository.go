package analyticsRepository

import (
	"context"
	"cozycash/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Analytics: &analyticsRepository{q: sqlExecutor, log: r.log},
		Commit:    commitFunc,
		Rollback:  rollbackFunc,
	}, nil
}

// Client aggregates one user's ledger. A nil window means the whole history.
type Client struct {
	Analytics interface {
		SumExpenses(c context.Context, userID int64, window *entity.Window) (decimal.Decimal, error)
		SumBudgets(c context.Context, userID int64, window *entity.Window) (decimal.Decimal, error)
		CategoryTotals(c context.Context, userID int64, window *entity.Window) ([]entity.CategoryTotal, error)
		ExpensePoints(c context.Context, userID int64, window *entity.Window) ([]entity.ExpensePoint, error)
	}

	Commit   func() error
	Rollback func() error
}

type analyticsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
