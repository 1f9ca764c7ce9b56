package entity

import (
	"strings"
	"time"
)

type User struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// UserLoginData is the identity the token middleware resolved for the
// current request. Its ID is the only ownership filter used downstream.
type UserLoginData struct {
	ID    int64
	Email string
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
