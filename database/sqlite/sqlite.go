package sqlite

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

const DriverName = "sqlite"

func init() {
	sqlx.BindDriver(DriverName, sqlx.QUESTION)
}

// New opens the database at path with foreign keys enforced. ":memory:"
// yields a private in-memory database held on a single connection.
func New(path string, log *logrus.Logger) (*sqlx.DB, error) {
	if path == "" {
		path = ":memory:"
	}
	log.Infof("Opening SQLite database %s...", path)

	db, err := sqlx.Connect(DriverName, dsn(path))
	if err != nil {
		log.Errorf("Failed to open SQLite database: %v", err)
		return nil, err
	}

	if isMemory(path) {
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
	}

	log.Info("Successfully opened SQLite database")

	return db, nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	return fmt.Sprintf("%s%s_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", path, sep)
}

func isMemory(path string) bool {
	return strings.HasPrefix(path, ":memory:") || strings.Contains(path, "mode=memory")
}
