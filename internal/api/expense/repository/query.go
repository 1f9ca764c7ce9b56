package expenseRepository

const (
	queryCreateExpense = `
INSERT INTO expenses (user_id, amount, description, category, date)
VALUES (:user_id, :amount, :description, :category, :date)
RETURNING id`

	queryGetExpenseByID = `
SELECT id, user_id, amount, description, category, date
FROM expenses
    WHERE id = :id AND user_id = :user_id`

	queryListExpenses = `
SELECT id, user_id, amount, description, category, date
FROM expenses
    WHERE user_id = :user_id
ORDER BY date DESC, id DESC
LIMIT :limit OFFSET :offset`

	queryUpdateExpense = `
UPDATE expenses
SET amount = :amount,
    description = :description,
    category = :category,
    date = :date
    WHERE id = :id AND user_id = :user_id`

	queryDeleteExpense = `
DELETE FROM expenses
    WHERE id = :id AND user_id = :user_id`
)
