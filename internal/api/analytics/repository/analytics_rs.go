package analyticsRepository

import (
	"context"
	"cozycash/internal/entity"
	contextPkg "cozycash/pkg/context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type CategoryTotalDB struct {
	Category sql.NullString      `db:"category"`
	Total    decimal.NullDecimal `db:"total"`
}

type ExpensePointDB struct {
	Date   sql.NullTime        `db:"date"`
	Amount decimal.NullDecimal `db:"amount"`
}

func (r *analyticsRepository) SumExpenses(c context.Context, userID int64, window *entity.Window) (decimal.Decimal, error) {
	return r.sum(c, userID, window, querySumExpenses, querySumExpensesInWindow, "SumExpenses")
}

func (r *analyticsRepository) SumBudgets(c context.Context, userID int64, window *entity.Window) (decimal.Decimal, error) {
	return r.sum(c, userID, window, querySumBudgets, querySumBudgetsInWindow, "SumBudgets")
}

func (r *analyticsRepository) CategoryTotals(c context.Context, userID int64, window *entity.Window) ([]entity.CategoryTotal, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []CategoryTotalDB

	query, args, err := r.prepare(userID, window, queryCategoryTotals, queryCategoryTotalsInWindow)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CategoryTotals named query preparation err")
		return nil, err
	}

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CategoryTotals execution err")
		return nil, err
	}

	result := make([]entity.CategoryTotal, 0, len(rows))
	for _, row := range rows {
		result = append(result, entity.CategoryTotal{
			Category: row.Category.String,
			Amount:   row.Total.Decimal.Round(2),
		})
	}

	return result, nil
}

func (r *analyticsRepository) ExpensePoints(c context.Context, userID int64, window *entity.Window) ([]entity.ExpensePoint, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []ExpensePointDB

	query, args, err := r.prepare(userID, window, queryExpensePoints, queryExpensePointsInWindow)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ExpensePoints named query preparation err")
		return nil, err
	}

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ExpensePoints execution err")
		return nil, err
	}

	result := make([]entity.ExpensePoint, 0, len(rows))
	for _, row := range rows {
		result = append(result, entity.ExpensePoint{
			Date:   row.Date.Time.UTC(),
			Amount: row.Amount.Decimal,
		})
	}

	return result, nil
}

func (r *analyticsRepository) sum(c context.Context, userID int64, window *entity.Window, all, windowed, op string) (decimal.Decimal, error) {
	requestID := contextPkg.GetRequestID(c)
	var total decimal.NullDecimal

	query, args, err := r.prepare(userID, window, all, windowed)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return decimal.Zero, err
	}

	if err := r.q.QueryRowxContext(c, query, args...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return decimal.Zero, err
	}

	if !total.Valid {
		return decimal.Zero, nil
	}

	return total.Decimal.Round(2), nil
}

// prepare picks the windowed variant of a query when window is set and
// binds it for the current driver.
func (r *analyticsRepository) prepare(userID int64, window *entity.Window, all, windowed string) (string, []interface{}, error) {
	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	namedQuery := all
	if window != nil {
		namedQuery = windowed
		argsKV["from"] = window.From
		argsKV["to"] = window.To
	}

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		return "", nil, err
	}

	return r.q.Rebind(query), args, nil
}
