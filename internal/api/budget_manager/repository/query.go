package budgetRepository

const (
	queryCreateBudget = `
INSERT INTO budgets (user_id, category, amount, month)
VALUES (:user_id, :category, :amount, :month)
RETURNING id`

	queryGetBudgetByID = `
SELECT id, user_id, category, amount, month
FROM budgets
    WHERE id = :id AND user_id = :user_id`

	queryListBudgets = `
SELECT id, user_id, category, amount, month
FROM budgets
    WHERE user_id = :user_id
ORDER BY month DESC, category ASC, id ASC
LIMIT :limit OFFSET :offset`

	queryListBudgetsInWindow = `
SELECT id, user_id, category, amount, month
FROM budgets
    WHERE user_id = :user_id AND month >= :from AND month < :to
ORDER BY month DESC, category ASC, id ASC
LIMIT :limit OFFSET :offset`

	queryUpdateBudget = `
UPDATE budgets
SET category = :category,
    amount = :amount,
    month = :month
    WHERE id = :id AND user_id = :user_id`

	queryDeleteBudget = `
DELETE FROM budgets
    WHERE id = :id AND user_id = :user_id`
)
