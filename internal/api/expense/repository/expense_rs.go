package expenseRepository

import (
	"context"
	"cozycash/internal/api/expense"
	"cozycash/internal/entity"
	contextPkg "cozycash/pkg/context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ExpenseDB struct {
	ID          sql.NullInt64       `db:"id"`
	UserID      sql.NullInt64       `db:"user_id"`
	Amount      decimal.NullDecimal `db:"amount"`
	Description sql.NullString      `db:"description"`
	Category    sql.NullString      `db:"category"`
	Date        sql.NullTime        `db:"date"`
}

func (r *expenseRepository) CreateExpense(c context.Context, exp entity.Expense) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(c)
	exp.Date = storedTime(exp.Date)

	argsKV := map[string]interface{}{
		"user_id":     exp.UserID,
		"amount":      exp.Amount,
		"description": exp.Description,
		"category":    exp.Category,
		"date":        exp.Date,
	}

	query, args, err := sqlx.Named(queryCreateExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateExpense")
		return entity.Expense{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).Scan(&exp.ID); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating expense")
		return entity.Expense{}, err
	}

	return exp, nil
}

func (r *expenseRepository) GetExpenseByID(c context.Context, userID, id int64) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(c)
	var row ExpenseDB

	argsKV := map[string]interface{}{
		"id":      id,
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetExpenseByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpenseByID named query preparation err")
		return entity.Expense{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"expense_id": id,
			}).Warn("GetExpenseByID no rows found")
			return entity.Expense{}, expense.ErrExpenseNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpenseByID execution err")
		return entity.Expense{}, err
	}

	return r.makeExpense(row), nil
}

func (r *expenseRepository) ListExpenses(c context.Context, userID int64, skip, limit int) ([]entity.Expense, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []ExpenseDB

	argsKV := map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
		"offset":  skip,
	}

	query, args, err := sqlx.Named(queryListExpenses, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListExpenses named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListExpenses execution err")
		return nil, err
	}

	result := make([]entity.Expense, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeExpense(row))
	}

	return result, nil
}

func (r *expenseRepository) UpdateExpense(c context.Context, exp entity.Expense) error {
	requestID := contextPkg.GetRequestID(c)

	argsKV := map[string]interface{}{
		"id":          exp.ID,
		"user_id":     exp.UserID,
		"amount":      exp.Amount,
		"description": exp.Description,
		"category":    exp.Category,
		"date":        storedTime(exp.Date),
	}

	query, args, err := sqlx.Named(queryUpdateExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateExpense named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateExpense execution err")
		return err
	}

	return r.expectAffected(result, requestID, "UpdateExpense")
}

func (r *expenseRepository) DeleteExpense(c context.Context, userID, id int64) error {
	requestID := contextPkg.GetRequestID(c)

	argsKV := map[string]interface{}{
		"id":      id,
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryDeleteExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteExpense named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteExpense execution err")
		return err
	}

	return r.expectAffected(result, requestID, "DeleteExpense")
}

func (r *expenseRepository) expectAffected(result sql.Result, requestID, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn(op + " no rows affected")
		return expense.ErrExpenseNotFound
	}

	return nil
}

func (r *expenseRepository) makeExpense(row ExpenseDB) entity.Expense {
	return entity.Expense{
		ID:          row.ID.Int64,
		UserID:      row.UserID.Int64,
		Amount:      row.Amount.Decimal,
		Description: row.Description.String,
		Category:    row.Category.String,
		Date:        row.Date.Time.UTC(),
	}
}

// storedTime matches the microsecond precision of timestamptz so values
// read back compare equal to what was written.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
