// Package databasetest opens migrated throwaway databases for package tests.
package databasetest

import (
	"cozycash/database/migration"
	"cozycash/database/sqlite"
	"io"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// NewSQLite returns a fresh in-memory database carrying the production
// schema. It is closed when t finishes.
func NewSQLite(t testing.TB) *sqlx.DB {
	t.Helper()

	log := Logger()
	db, err := sqlite.New(":memory:", log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migration.Up(db, "", log))

	return db
}

// InsertUser creates a bare user row and returns its id.
func InsertUser(t testing.TB, db *sqlx.DB, email string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRowx(db.Rebind(`INSERT INTO users (email, password_hash, created_at) VALUES (?, ?, CURRENT_TIMESTAMP) RETURNING id`),
		email, "hash").Scan(&id)
	require.NoError(t, err)

	return id
}
