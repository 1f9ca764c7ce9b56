package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratePostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migrateSqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

//go:embed postgres/*.sql sqlite/*.sql
var migrationsFS embed.FS

// Up applies every pending migration for the dialect of db.
//
// Postgres migrates over a dedicated connection opened from dsn. SQLite
// migrates on db itself so in-memory databases see the schema.
func Up(db *sqlx.DB, dsn string, log *logrus.Logger) error {
	switch db.DriverName() {
	case "postgres":
		return upPostgres(dsn, log)
	case "sqlite":
		return upSqlite(db.DB, log)
	default:
		return fmt.Errorf("unsupported migration driver %q", db.DriverName())
	}
}

func upPostgres(dsn string, log *logrus.Logger) error {
	migrateDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := migratePostgres.WithInstance(migrateDB, &migratePostgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "postgres")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	return run(m, log)
}

func upSqlite(db *sql.DB, log *logrus.Logger) error {
	driver, err := migrateSqlite.WithInstance(db, &migrateSqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "sqlite")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}
	// Closing the migrate instance would close db as well.
	defer src.Close()

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	return run(m, log)
}

func run(m *migrate.Migrate, log *logrus.Logger) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}

	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("Database schema is up to date")

	return nil
}
