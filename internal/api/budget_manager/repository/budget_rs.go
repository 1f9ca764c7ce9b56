package budgetRepository

import (
	"context"
	"cozycash/database"
	"cozycash/internal/api/budget_manager"
	"cozycash/internal/entity"
	contextPkg "cozycash/pkg/context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type BudgetDB struct {
	ID       sql.NullInt64       `db:"id"`
	UserID   sql.NullInt64       `db:"user_id"`
	Category sql.NullString      `db:"category"`
	Amount   decimal.NullDecimal `db:"amount"`
	Month    sql.NullTime        `db:"month"`
}

// CreateBudget relies on the (user, category, month) unique constraint; a
// duplicate surfaces as ErrBudgetAlreadyExists.
func (r *budgetRepository) CreateBudget(c context.Context, budget entity.Budget) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(c)
	budget.Month = entity.NormalizeMonth(budget.Month)

	argsKV := map[string]interface{}{
		"user_id":  budget.UserID,
		"category": budget.Category,
		"amount":   budget.Amount,
		"month":    budget.Month,
	}

	query, args, err := sqlx.Named(queryCreateBudget, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateBudget")
		return entity.Budget{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).Scan(&budget.ID); err != nil {
		if database.IsUniqueViolation(err) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"category":   budget.Category,
				"month":      budget.Month.Format(budget_manager.MonthLayout),
			}).Warn("Budget already exists")
			return entity.Budget{}, budget_manager.ErrBudgetAlreadyExists
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating budget")
		return entity.Budget{}, err
	}

	return budget, nil
}

func (r *budgetRepository) GetBudgetByID(c context.Context, userID, id int64) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(c)
	var row BudgetDB

	argsKV := map[string]interface{}{
		"id":      id,
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetBudgetByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBudgetByID named query preparation err")
		return entity.Budget{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"budget_id":  id,
			}).Warn("GetBudgetByID no rows found")
			return entity.Budget{}, budget_manager.ErrBudgetNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBudgetByID execution err")
		return entity.Budget{}, err
	}

	return r.makeBudget(row), nil
}

func (r *budgetRepository) ListBudgets(c context.Context, userID int64, window *entity.Window, skip, limit int) ([]entity.Budget, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []BudgetDB

	argsKV := map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
		"offset":  skip,
	}

	var namedQuery string
	switch {
	case window != nil:
		namedQuery = queryListBudgetsInWindow
		argsKV["from"] = window.From
		argsKV["to"] = window.To
	default:
		namedQuery = queryListBudgets
	}

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListBudgets named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListBudgets execution err")
		return nil, err
	}

	result := make([]entity.Budget, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeBudget(row))
	}

	return result, nil
}

func (r *budgetRepository) UpdateBudget(c context.Context, budget entity.Budget) error {
	requestID := contextPkg.GetRequestID(c)

	argsKV := map[string]interface{}{
		"id":       budget.ID,
		"user_id":  budget.UserID,
		"category": budget.Category,
		"amount":   budget.Amount,
		"month":    entity.NormalizeMonth(budget.Month),
	}

	query, args, err := sqlx.Named(queryUpdateBudget, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateBudget named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		if database.IsUniqueViolation(err) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"budget_id":  budget.ID,
			}).Warn("UpdateBudget collides with an existing budget")
			return budget_manager.ErrBudgetAlreadyExists
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateBudget execution err")
		return err
	}

	return r.expectAffected(result, requestID, "UpdateBudget")
}

func (r *budgetRepository) DeleteBudget(c context.Context, userID, id int64) error {
	requestID := contextPkg.GetRequestID(c)

	argsKV := map[string]interface{}{
		"id":      id,
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryDeleteBudget, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteBudget named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteBudget execution err")
		return err
	}

	return r.expectAffected(result, requestID, "DeleteBudget")
}

func (r *budgetRepository) expectAffected(result sql.Result, requestID, op string) error {
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
		return budget_manager.ErrBudgetNotFound
	}

	return nil
}

func (r *budgetRepository) makeBudget(row BudgetDB) entity.Budget {
	return entity.Budget{
		ID:       row.ID.Int64,
		UserID:   row.UserID.Int64,
		Category: row.Category.String,
		Amount:   row.Amount.Decimal,
		Month:    entity.NormalizeMonth(row.Month.Time),
	}
}
