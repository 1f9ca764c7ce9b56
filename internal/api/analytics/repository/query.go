package analyticsRepository

const (
	querySumExpenses = `
SELECT ROUND(COALESCE(SUM(amount), 0), 2) AS total
FROM expenses
    WHERE user_id = :user_id`

	querySumExpensesInWindow = `
SELECT ROUND(COALESCE(SUM(amount), 0), 2) AS total
FROM expenses
    WHERE user_id = :user_id AND date >= :from AND date < :to`

	querySumBudgets = `
SELECT ROUND(COALESCE(SUM(amount), 0), 2) AS total
FROM budgets
    WHERE user_id = :user_id`

	querySumBudgetsInWindow = `
SELECT ROUND(COALESCE(SUM(amount), 0), 2) AS total
FROM budgets
    WHERE user_id = :user_id AND month >= :from AND month < :to`

	queryCategoryTotals = `
SELECT category, ROUND(COALESCE(SUM(amount), 0), 2) AS total
FROM expenses
    WHERE user_id = :user_id
GROUP BY category`

	queryCategoryTotalsInWindow = `
SELECT category, ROUND(COALESCE(SUM(amount), 0), 2) AS total
FROM expenses
    WHERE user_id = :user_id AND date >= :from AND date < :to
GROUP BY category`

	queryExpensePoints = `
SELECT date, amount
FROM expenses
    WHERE user_id = :user_id
ORDER BY date ASC, id ASC`

	queryExpensePointsInWindow = `
SELECT date, amount
FROM expenses
    WHERE user_id = :user_id AND date >= :from AND date < :to
ORDER BY date ASC, id ASC`
)
