package postgres

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const DriverName = "postgres"

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN pins the session time zone to UTC so timestamptz values scan back in
// UTC regardless of the server default.
func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s timezone=UTC",
		c.Host, c.Port, c.User, c.Password, c.Name, sslMode)
}

func New(cfg Config, log *logrus.Logger) (*sqlx.DB, error) {
	log.Infof("Connecting to PostgreSQL at %s:%s/%s...", cfg.Host, cfg.Port, cfg.Name)

	db, err := sqlx.Connect(DriverName, cfg.DSN())
	if err != nil {
		log.Errorf("Failed to connect to PostgreSQL: %v", err)
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	log.Info("Successfully connected to PostgreSQL")

	return db, nil
}
