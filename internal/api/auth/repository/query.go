package authRepository

const (
	queryCreateUser = `
INSERT INTO users (email, password_hash, created_at)
VALUES (:email, :password_hash, :created_at)
RETURNING id`

	queryGetById = `
SELECT id, email, password_hash, created_at
FROM users
    WHERE id = :id`

	queryGetByEmail = `
SELECT id, email, password_hash, created_at
FROM users
    WHERE email = :email`

	queryDeleteUser = `
DELETE FROM users
    WHERE id = :id`
)
